package catalog

import (
	"strconv"
	"strings"

	"github.com/agenthands/pokedex/internal/pokeapi"
)

const englishLanguage = "en"

// ItemFromPokemon builds a catalog item from a raw pokemon record.
func ItemFromPokemon(p *pokeapi.Pokemon) Item {
	item := Item{
		ID:         p.ID,
		Name:       p.Name,
		Categories: make([]string, 0, len(p.Types)),
		Stats:      make([]Stat, 0, len(p.Stats)),
		Image: ImageRef{
			OfficialArtwork: deref(p.Sprites.Other.OfficialArtwork.FrontDefault),
			HomeArtwork:     deref(p.Sprites.Other.Home.FrontDefault),
			Sprite:          deref(p.Sprites.FrontDefault),
		},
	}
	for _, t := range p.Types {
		item.Categories = append(item.Categories, t.Type.Name)
	}
	for _, s := range p.Stats {
		item.Stats = append(item.Stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return item
}

// DetailFrom combines a pokemon record with its species record. species may
// be nil, in which case only pokemon-level fields are filled.
func DetailFrom(p *pokeapi.Pokemon, species *pokeapi.Species) Detail {
	d := Detail{
		Item:             ItemFromPokemon(p),
		Abilities:        make([]string, 0, len(p.Abilities)),
		HeightDecimeters: p.Height,
		WeightHectograms: p.Weight,
	}
	for _, a := range p.Abilities {
		d.Abilities = append(d.Abilities, a.Ability.Name)
	}
	for _, m := range p.Moves {
		d.Moves = append(d.Moves, m.Move.Name)
	}

	if species == nil {
		return d
	}
	d.Description = EnglishFlavorText(species.FlavorTextEntries)
	d.Genus = EnglishGenus(species.Genera)
	d.IsLegendary = species.IsLegendary
	d.IsMythical = species.IsMythical
	d.Generation = species.Generation.Name
	if species.Habitat != nil {
		d.Habitat = species.Habitat.Name
	}
	if species.EvolutionChain != nil {
		d.EvolutionChainURL = species.EvolutionChain.URL
	}
	return d
}

var flavorTextCleaner = strings.NewReplacer("\f", " ", "\n", " ", "POKéMON", "Pokémon")

// EnglishFlavorText returns the most recent English entry with the
// game-text control characters normalised, or "" when there is none.
func EnglishFlavorText(entries []pokeapi.FlavorText) string {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Language.Name == englishLanguage {
			return flavorTextCleaner.Replace(entries[i].FlavorText)
		}
	}
	return ""
}

func EnglishGenus(genera []pokeapi.Genus) string {
	for _, g := range genera {
		if g.Language.Name == englishLanguage {
			return g.Genus
		}
	}
	return ""
}

// AbilityInfo is the English summary of an ability.
type AbilityInfo struct {
	Name        string `json:"name"`
	Effect      string `json:"effect"`
	ShortEffect string `json:"short_effect"`
}

// MoveInfo is the English summary of a move. Accuracy, Power and PP are
// nil for moves that have none.
type MoveInfo struct {
	Name        string `json:"name"`
	Category    string `json:"type"`
	DamageClass string `json:"damage_class"`
	Accuracy    *int   `json:"accuracy"`
	Power       *int   `json:"power"`
	PP          *int   `json:"pp"`
	Priority    int    `json:"priority"`
	Effect      string `json:"effect"`
	ShortEffect string `json:"short_effect"`
	FlavorText  string `json:"flavor_text,omitempty"`
}

const noDescription = "No description available"

func AbilityInfoFrom(a *pokeapi.Ability) AbilityInfo {
	info := AbilityInfo{Name: a.Name, Effect: noDescription, ShortEffect: noDescription}
	if e, ok := englishEffect(a.EffectEntries); ok {
		info.Effect = e.Effect
		info.ShortEffect = e.ShortEffect
	}
	return info
}

// MoveInfoFrom summarises a move, substituting $effect_chance in the effect
// texts when the move has one. FlavorText is the first English in-game
// description.
func MoveInfoFrom(m *pokeapi.Move) MoveInfo {
	info := MoveInfo{
		Name:        m.Name,
		Category:    m.Type.Name,
		DamageClass: m.DamageClass.Name,
		Accuracy:    m.Accuracy,
		Power:       m.Power,
		PP:          m.PP,
		Priority:    m.Priority,
		Effect:      noDescription,
		ShortEffect: noDescription,
	}
	if e, ok := englishEffect(m.EffectEntries); ok {
		info.Effect = e.Effect
		info.ShortEffect = e.ShortEffect
	}
	for _, f := range m.FlavorTextEntries {
		if f.Language.Name == englishLanguage {
			info.FlavorText = flavorTextCleaner.Replace(f.FlavorText)
			break
		}
	}
	if m.EffectChance != nil {
		chance := strconv.Itoa(*m.EffectChance)
		info.Effect = strings.ReplaceAll(info.Effect, "$effect_chance", chance)
		info.ShortEffect = strings.ReplaceAll(info.ShortEffect, "$effect_chance", chance)
	}
	return info
}

func englishEffect(entries []pokeapi.EffectEntry) (pokeapi.EffectEntry, bool) {
	for _, e := range entries {
		if e.Language.Name == englishLanguage {
			return e, true
		}
	}
	return pokeapi.EffectEntry{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
