package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/agenthands/pokedex/internal/pokeapi"
)

// MockAPI serves canned records. Pokemon are looked up by name or id.
type MockAPI struct {
	mu sync.Mutex

	Pokemons      []*pokeapi.Pokemon
	SpeciesByURL  map[string]*pokeapi.Species
	ChainsByURL   map[string]*pokeapi.EvolutionChain
	AbilityByName map[string]*pokeapi.Ability
	MoveByName    map[string]*pokeapi.Move

	ListErr    error
	FailDetail map[string]bool

	// OnPokemon, when set, runs at the start of every Pokemon call.
	OnPokemon func(nameOrID string)

	PokemonCalls int
	AbilityCalls int
	MoveCalls    int
}

func (m *MockAPI) List(ctx context.Context, limit int) (*pokeapi.ListResponse, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	list := &pokeapi.ListResponse{Count: len(m.Pokemons)}
	for i, p := range m.Pokemons {
		if i == limit {
			break
		}
		list.Results = append(list.Results, pokeapi.NamedResource{
			Name: p.Name,
			URL:  fmt.Sprintf("https://pokeapi.test/api/v2/pokemon/%d/", p.ID),
		})
	}
	return list, nil
}

func (m *MockAPI) Pokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error) {
	m.mu.Lock()
	m.PokemonCalls++
	m.mu.Unlock()

	if m.OnPokemon != nil {
		m.OnPokemon(nameOrID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.FailDetail[nameOrID] {
		return nil, fmt.Errorf("pokeapi returned status 500: boom")
	}
	for _, p := range m.Pokemons {
		if p.Name == nameOrID || strconv.Itoa(p.ID) == nameOrID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", nameOrID, pokeapi.ErrNotFound)
}

func (m *MockAPI) Species(ctx context.Context, url string) (*pokeapi.Species, error) {
	if s, ok := m.SpeciesByURL[url]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%s: %w", url, pokeapi.ErrNotFound)
}

func (m *MockAPI) EvolutionChain(ctx context.Context, url string) (*pokeapi.EvolutionChain, error) {
	if c, ok := m.ChainsByURL[url]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%s: %w", url, pokeapi.ErrNotFound)
}

func (m *MockAPI) Ability(ctx context.Context, name string) (*pokeapi.Ability, error) {
	m.mu.Lock()
	m.AbilityCalls++
	m.mu.Unlock()
	if a, ok := m.AbilityByName[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%s: %w", name, pokeapi.ErrNotFound)
}

func (m *MockAPI) Move(ctx context.Context, name string) (*pokeapi.Move, error) {
	m.mu.Lock()
	m.MoveCalls++
	m.mu.Unlock()
	if mv, ok := m.MoveByName[name]; ok {
		return mv, nil
	}
	return nil, fmt.Errorf("%s: %w", name, pokeapi.ErrNotFound)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func newPokemon(id int, name string, types ...string) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{
		ID:      id,
		Name:    name,
		Height:  7,
		Weight:  69,
		Species: pokeapi.NamedResource{Name: name, URL: fmt.Sprintf("https://pokeapi.test/api/v2/pokemon-species/%d/", id)},
		Stats: []pokeapi.PokemonStat{
			{BaseStat: 45, Stat: pokeapi.NamedResource{Name: "hp"}},
			{BaseStat: 49, Stat: pokeapi.NamedResource{Name: "attack"}},
		},
	}
	p.Sprites.Other.OfficialArtwork.FrontDefault = strPtr(fmt.Sprintf("https://img.test/%d.png", id))
	for i, t := range types {
		p.Types = append(p.Types, pokeapi.PokemonType{Slot: i + 1, Type: pokeapi.NamedResource{Name: t}})
	}
	return p
}

// makeItems builds n items with ids 1..n and names poke-<id>.
func makeItems(n int) []Item {
	items := make([]Item, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, Item{ID: i, Name: fmt.Sprintf("poke-%d", i), Categories: []string{Normal}})
	}
	return items
}

func itemIDs(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
