package catalog

import (
	"strings"
)

// Region is a static description of one game region.
type Region struct {
	ID               int      `json:"id"`
	Key              string   `json:"key"`
	Name             string   `json:"name"`
	Generation       string   `json:"generation"`
	Description      string   `json:"description"`
	MainGames        []string `json:"main_games"`
	RepresentativeID int      `json:"representative_id"`
	StarterIDs       []int    `json:"starter_ids"`
	LegendaryIDs     []int    `json:"legendary_ids"`
}

// The remote API has no region summaries, so they are kept here.
var regions = []Region{
	{
		ID:               1,
		Key:              "kanto",
		Name:             "Kanto",
		Generation:       "Generation I",
		Description:      "Kanto is a region based on the real-life Kantō region of Japan. It was the first region to be introduced in the Pokémon series, featured in the original games Pokémon Red, Green, Blue, and Yellow.",
		MainGames:        []string{"Red", "Blue", "Yellow", "FireRed", "LeafGreen", "Let's Go Pikachu", "Let's Go Eevee"},
		RepresentativeID: 25,
		StarterIDs:       []int{1, 4, 7},
		LegendaryIDs:     []int{144, 145, 146, 150, 151},
	},
	{
		ID:               2,
		Key:              "johto",
		Name:             "Johto",
		Generation:       "Generation II",
		Description:      "Johto is a region located west of Kanto. It was introduced in Pokémon Gold, Silver, and Crystal. The landscape consists of rural and urban areas with many old traditions and legends.",
		MainGames:        []string{"Gold", "Silver", "Crystal", "HeartGold", "SoulSilver"},
		RepresentativeID: 152,
		StarterIDs:       []int{152, 155, 158},
		LegendaryIDs:     []int{243, 244, 245, 249, 250, 251},
	},
	{
		ID:               3,
		Key:              "hoenn",
		Name:             "Hoenn",
		Generation:       "Generation III",
		Description:      "Hoenn is a region with many natural wonders, including routes, towns, caves, oceans, and more. It hosts contests and gyms, and is the setting for Pokémon Ruby, Sapphire, and Emerald.",
		MainGames:        []string{"Ruby", "Sapphire", "Emerald", "Omega Ruby", "Alpha Sapphire"},
		RepresentativeID: 252,
		StarterIDs:       []int{252, 255, 258},
		LegendaryIDs:     []int{377, 378, 379, 380, 381, 382, 383, 384, 385},
	},
	{
		ID:               4,
		Key:              "sinnoh",
		Name:             "Sinnoh",
		Generation:       "Generation IV",
		Description:      "Sinnoh is based on the Japanese island of Hokkaido and is characterized by its many mountains, which include Mt. Coronet, which divides the region into two parts.",
		MainGames:        []string{"Diamond", "Pearl", "Platinum", "Brilliant Diamond", "Shining Pearl"},
		RepresentativeID: 387,
		StarterIDs:       []int{387, 390, 393},
		LegendaryIDs:     []int{480, 481, 482, 483, 484, 485, 486, 487, 488, 491, 492, 493},
	},
	{
		ID:               5,
		Key:              "unova",
		Name:             "Unova",
		Generation:       "Generation V",
		Description:      "Unova is based on New York City and the surrounding New York metropolitan area. It is a region with a large city center and diverse environments, including deserts, mountains, and forests.",
		MainGames:        []string{"Black", "White", "Black 2", "White 2"},
		RepresentativeID: 495,
		StarterIDs:       []int{495, 498, 501},
		LegendaryIDs:     []int{638, 639, 640, 641, 642, 643, 644, 645, 646, 647, 648, 649},
	},
	{
		ID:               6,
		Key:              "kalos",
		Name:             "Kalos",
		Generation:       "Generation VI",
		Description:      "Kalos is inspired by France and is known for its focus on beauty. The region has a variety of towns and cities, with the largest being Lumiose City, which is based on Paris.",
		MainGames:        []string{"X", "Y"},
		RepresentativeID: 650,
		StarterIDs:       []int{650, 653, 656},
		LegendaryIDs:     []int{716, 717, 718, 719, 720, 721},
	},
	{
		ID:               7,
		Key:              "alola",
		Name:             "Alola",
		Generation:       "Generation VII",
		Description:      "Alola is based on Hawaii and consists of four main islands and one artificial island. Each island features unique challenges and environments.",
		MainGames:        []string{"Sun", "Moon", "Ultra Sun", "Ultra Moon"},
		RepresentativeID: 722,
		StarterIDs:       []int{722, 725, 728},
		LegendaryIDs: []int{
			772, 773, 785, 786, 787, 788, 789, 790, 791, 792, 793, 794,
			795, 796, 797, 798, 799, 800, 801, 802, 805, 806, 807,
		},
	},
	{
		ID:               8,
		Key:              "galar",
		Name:             "Galar",
		Generation:       "Generation VIII",
		Description:      "Galar is based on Great Britain and features diverse landscapes ranging from rural countryside to industrial cities.",
		MainGames:        []string{"Sword", "Shield"},
		RepresentativeID: 810,
		StarterIDs:       []int{810, 813, 816},
		LegendaryIDs:     []int{888, 889, 890, 891, 892, 893, 894, 895, 896, 897, 898},
	},
	{
		ID:               9,
		Key:              "paldea",
		Name:             "Paldea",
		Generation:       "Generation IX",
		Description:      "Paldea is inspired by the Iberian Peninsula (Spain and Portugal) and features a large, open world with three main storylines that players can pursue in any order.",
		MainGames:        []string{"Scarlet", "Violet"},
		RepresentativeID: 906,
		StarterIDs:       []int{906, 909, 912},
		LegendaryIDs:     []int{993, 994, 995, 997, 998, 999, 1000, 1001, 1002, 1003, 1004},
	},
}

// Regions returns the region table ordered by id.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// RegionByKey looks a region up by its lowercase key, e.g. "kanto".
func RegionByKey(key string) (Region, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, r := range regions {
		if r.Key == key {
			return r, true
		}
	}
	return Region{}, false
}

// SearchRegions filters the table by a case-insensitive substring of the
// name, generation or description. An empty term returns every region.
func SearchRegions(term string) []Region {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return Regions()
	}
	var out []Region
	for _, r := range regions {
		if strings.Contains(strings.ToLower(r.Name), needle) ||
			strings.Contains(strings.ToLower(r.Generation), needle) ||
			strings.Contains(strings.ToLower(r.Description), needle) {
			out = append(out, r)
		}
	}
	return out
}
