package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agenthands/pokedex/internal/pokeapi"
)

// maxEvolutionDepth stops the walk on malformed chains.
const maxEvolutionDepth = 16

// Evolution is one stage of a flattened evolution chain.
type Evolution struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Method   string `json:"method"`
	ImageURL string `json:"image_url,omitempty"`
	Depth    int    `json:"depth"`
}

// FlattenEvolutions walks the chain depth-first, parents before children and
// children in source order. Species already visited, or nodes deeper than
// maxEvolutionDepth, are skipped.
func FlattenEvolutions(root pokeapi.ChainLink) []Evolution {
	type frame struct {
		link  pokeapi.ChainLink
		depth int
	}

	var out []Evolution
	seen := make(map[string]struct{})
	stack := []frame{{link: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := top.link.Species.Name
		if _, ok := seen[name]; ok || top.depth > maxEvolutionDepth {
			continue
		}
		seen[name] = struct{}{}

		out = append(out, Evolution{
			ID:     SpeciesIDFromURL(top.link.Species.URL),
			Name:   name,
			Method: EvolutionMethod(top.link.EvolutionDetails),
			Depth:  top.depth,
		})

		// Push in reverse so the first child is popped first.
		for i := len(top.link.EvolvesTo) - 1; i >= 0; i-- {
			stack = append(stack, frame{link: top.link.EvolvesTo[i], depth: top.depth + 1})
		}
	}
	return out
}

// EvolutionMethod describes how a stage is reached, from its first
// evolution detail. The base stage has no details and reports "Unknown".
func EvolutionMethod(details []pokeapi.EvolutionDetail) string {
	if len(details) == 0 {
		return "Unknown"
	}
	d := details[0]

	switch {
	case d.MinLevel != nil && *d.MinLevel != 0:
		return fmt.Sprintf("Level %d", *d.MinLevel)
	case d.MinHappiness != nil && *d.MinHappiness != 0:
		return fmt.Sprintf("Happiness (%d+)", *d.MinHappiness)
	case d.Item != nil:
		return "Use " + DisplayName(d.Item.Name)
	case d.HeldItem != nil:
		return "Level up holding " + DisplayName(d.HeldItem.Name)
	case d.TradeSpecies != nil:
		return "Trade for " + DisplayName(d.TradeSpecies.Name)
	case d.KnownMove != nil:
		return "Learn " + DisplayName(d.KnownMove.Name)
	case d.Location != nil:
		return "Level up at " + DisplayName(d.Location.Name)
	case d.Trigger != nil && d.Trigger.Name == "trade":
		return "Trade"
	case d.TimeOfDay != "":
		return "Level up during " + d.TimeOfDay
	}
	return "Special conditions"
}

// SpeciesIDFromURL extracts the trailing numeric id of a resource URL such
// as ".../pokemon-species/25/". It returns 0 when there is none.
func SpeciesIDFromURL(u string) int {
	parts := strings.Split(strings.TrimRight(u, "/"), "/")
	if len(parts) == 0 {
		return 0
	}
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}
