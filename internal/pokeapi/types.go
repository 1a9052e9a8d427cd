package pokeapi

// NamedResource is the {name, url} reference pair used throughout the API.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type APIResource struct {
	URL string `json:"url"`
}

type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Height    int              `json:"height"`
	Weight    int              `json:"weight"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Stats     []PokemonStat    `json:"stats"`
	Moves     []PokemonMove    `json:"moves"`
	Sprites   Sprites          `json:"sprites"`
	Species   NamedResource    `json:"species"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type PokemonMove struct {
	Move NamedResource `json:"move"`
}

type Sprites struct {
	FrontDefault *string      `json:"front_default"`
	Other        OtherSprites `json:"other"`
}

type OtherSprites struct {
	OfficialArtwork Artwork `json:"official-artwork"`
	Home            Artwork `json:"home"`
}

type Artwork struct {
	FrontDefault *string `json:"front_default"`
}

type Species struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	FlavorTextEntries []FlavorText   `json:"flavor_text_entries"`
	Genera            []Genus        `json:"genera"`
	IsLegendary       bool           `json:"is_legendary"`
	IsMythical        bool           `json:"is_mythical"`
	Habitat           *NamedResource `json:"habitat"`
	Generation        NamedResource  `json:"generation"`
	EvolutionChain    *APIResource   `json:"evolution_chain"`
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of the recursive evolution tree.
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionDetail struct {
	Trigger      *NamedResource `json:"trigger"`
	MinLevel     *int           `json:"min_level"`
	MinHappiness *int           `json:"min_happiness"`
	Item         *NamedResource `json:"item"`
	HeldItem     *NamedResource `json:"held_item"`
	TradeSpecies *NamedResource `json:"trade_species"`
	KnownMove    *NamedResource `json:"known_move"`
	Location     *NamedResource `json:"location"`
	TimeOfDay    string         `json:"time_of_day"`
}

type EffectEntry struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}

type Ability struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	EffectEntries []EffectEntry `json:"effect_entries"`
}

type Move struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Accuracy          *int             `json:"accuracy"`
	Power             *int             `json:"power"`
	PP                *int             `json:"pp"`
	Priority          int              `json:"priority"`
	EffectChance      *int             `json:"effect_chance"`
	Type              NamedResource    `json:"type"`
	DamageClass       NamedResource    `json:"damage_class"`
	EffectEntries     []EffectEntry    `json:"effect_entries"`
	FlavorTextEntries []MoveFlavorText `json:"flavor_text_entries"`
}

// MoveFlavorText is keyed by version group rather than by game version.
type MoveFlavorText struct {
	FlavorText   string        `json:"flavor_text"`
	Language     NamedResource `json:"language"`
	VersionGroup NamedResource `json:"version_group"`
}
