package persona

import (
	"fmt"
	"strings"

	"github.com/agenthands/pokedex/internal/catalog"
)

const fallbackStrength = "overall strength"

var statDisplayNames = map[string]string{
	"hp":              "Health",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Special Attack",
	"special-defense": "Special Defense",
	"speed":           "Speed",
}

// StatDisplayName maps a stat key to its label. Unknown keys are
// capitalised with hyphens turned into spaces.
func StatDisplayName(key string) string {
	if name, ok := statDisplayNames[key]; ok {
		return name
	}
	return catalog.DisplayName(key)
}

// StrongestStat returns the label of the highest stat; ties go to the
// earlier stat.
func StrongestStat(stats []catalog.Stat) string {
	if len(stats) == 0 {
		return fallbackStrength
	}
	best := stats[0]
	for _, s := range stats[1:] {
		if s.Value > best.Value {
			best = s
		}
	}
	return StatDisplayName(best.Name)
}

// systemPromptTemplate is filled by BuildSystemPrompt. The description verb
// carries its own line break so an absent description drops the line.
const systemPromptTemplate = `
You are %s, a %s type Pokémon. 
%sYou have abilities such as %s.
%s
%s

Your responses should reflect your Pokémon nature and characteristics.
Occasionally use '%s' in your responses, but always translate what you mean in parentheses.
Keep your responses concise, generally under 3 sentences.
You should be friendly, helpful, and knowledgeable about the Pokémon world, but always stay in character.

When discussing Pokémon battles or moves, you understand type advantages and disadvantages.
If asked about your stats, you know that your strongest stat is %s.

Don't break character under any circumstances - you are a Pokémon, not an AI.
`

// BuildSystemPrompt renders the in-character instruction for a creature.
func BuildSystemPrompt(d catalog.Detail) string {
	var intro string
	switch {
	case d.Description != "":
		intro = d.Description + "\n"
	case d.Genus != "":
		intro = fmt.Sprintf("You are known as the %s.\n", d.Genus)
	}

	var habitat string
	if d.Habitat != "" {
		habitat = fmt.Sprintf("Your natural habitat is %s.", d.Habitat)
	}

	return fmt.Sprintf(systemPromptTemplate,
		capitalize(d.Name),
		strings.Join(d.Categories, " and "),
		intro,
		strings.Join(d.Abilities, ", "),
		habitat,
		personalityLine(DeriveTraits(d.Categories, d.IsLegendary, d.IsMythical)),
		DeriveSound(d.Name),
		StrongestStat(d.Stats),
	)
}

func personalityLine(traits []string) string {
	if len(traits) == 0 {
		return "You have a friendly and helpful personality."
	}
	return fmt.Sprintf("Your personality is %s.", strings.Join(traits, ", "))
}

// capitalize upper-cases the first letter only; hyphens are kept.
func capitalize(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
