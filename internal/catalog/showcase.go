package catalog

import (
	"math/rand/v2"
)

// Fixed home page selections.
var (
	FeaturedIDs  = []int{25, 6, 150, 448, 658, 282, 94, 133}
	LegendaryIDs = []int{150, 249, 384, 483, 644, 716, 792, 890}
	StarterIDs   = []int{1, 4, 7, 152, 155, 158, 252, 255}
)

const (
	// Hero picks stay within the generations with consistent artwork.
	heroMaxID    = 649
	popularMaxID = 1024
	popularCount = 8
)

// Showcase groups the home page selections.
type Showcase struct {
	Hero      *Item  `json:"hero,omitempty"`
	Featured  []Item `json:"featured"`
	Popular   []Item `json:"popular"`
	Legendary []Item `json:"legendary"`
	Starters  []Item `json:"starters"`
}

// RandomHeroID returns an id in [1, 649].
func RandomHeroID(r *rand.Rand) int {
	return r.IntN(heroMaxID) + 1
}

// PopularIDs returns popularCount distinct ids in [1, 1024].
func PopularIDs(r *rand.Rand) []int {
	seen := make(map[int]struct{}, popularCount)
	ids := make([]int, 0, popularCount)
	for len(ids) < popularCount {
		id := r.IntN(popularMaxID) + 1
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
