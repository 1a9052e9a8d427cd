package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Category tags, in the order the browse filter lists them.
const (
	Normal   = "normal"
	Fire     = "fire"
	Water    = "water"
	Electric = "electric"
	Grass    = "grass"
	Ice      = "ice"
	Fighting = "fighting"
	Poison   = "poison"
	Ground   = "ground"
	Flying   = "flying"
	Psychic  = "psychic"
	Bug      = "bug"
	Rock     = "rock"
	Ghost    = "ghost"
	Dragon   = "dragon"
	Dark     = "dark"
	Steel    = "steel"
	Fairy    = "fairy"
)

var Categories = []string{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

func IsCategory(tag string) bool {
	for _, c := range Categories {
		if c == tag {
			return true
		}
	}
	return false
}

type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ImageRef holds the three candidate images of an item in resolution order.
type ImageRef struct {
	OfficialArtwork string `json:"official_artwork,omitempty"`
	HomeArtwork     string `json:"home_artwork,omitempty"`
	Sprite          string `json:"sprite,omitempty"`
}

// URL returns the first non-empty image, or "" when none is available.
func (r ImageRef) URL() string {
	switch {
	case r.OfficialArtwork != "":
		return r.OfficialArtwork
	case r.HomeArtwork != "":
		return r.HomeArtwork
	default:
		return r.Sprite
	}
}

// Item is one catalog entry. Items are built once from an API response and
// never modified afterwards.
type Item struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Categories []string `json:"types"`
	Stats      []Stat   `json:"stats"`
	Image      ImageRef `json:"image"`
}

// PrimaryCategory is the first category, or normal when the item has none.
func (i Item) PrimaryCategory() string {
	if len(i.Categories) == 0 {
		return Normal
	}
	return i.Categories[0]
}

// Detail extends Item with the species-level facts used by the detail view
// and by persona synthesis.
type Detail struct {
	Item
	Abilities         []string `json:"abilities"`
	Moves             []string `json:"moves,omitempty"`
	HeightDecimeters  int      `json:"height"`
	WeightHectograms  int      `json:"weight"`
	Description       string   `json:"description,omitempty"`
	Genus             string   `json:"genus,omitempty"`
	IsLegendary       bool     `json:"is_legendary"`
	IsMythical        bool     `json:"is_mythical"`
	Habitat           string   `json:"habitat,omitempty"`
	Generation        string   `json:"generation,omitempty"`
	EvolutionChainURL string   `json:"-"`
}

// DisplayName capitalises the first letter and turns hyphens into spaces.
func DisplayName(name string) string {
	if name == "" {
		return ""
	}
	spaced := strings.ReplaceAll(name, "-", " ")
	return strings.ToUpper(spaced[:1]) + spaced[1:]
}

// FormatNumber renders an id as a zero-padded dex number, e.g. "#025".
func FormatNumber(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// HeightFeetInches converts decimetres to a feet'inches" string.
func HeightFeetInches(decimeters int) string {
	totalInches := float64(decimeters) * 3.937
	feet := int(math.Floor(totalInches / 12))
	inches := int(math.Round(math.Mod(totalInches, 12)))
	return fmt.Sprintf("%d'%d\"", feet, inches)
}

// WeightPounds converts hectograms to pounds with one decimal.
func WeightPounds(hectograms int) string {
	return fmt.Sprintf("%.1f lbs", float64(hectograms)/4.536)
}
