package persona

import (
	"context"
	"sync"

	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/llm"
)

type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Err           error
	Requests      []llm.Request
}

func (m *MockLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func pikachu() catalog.Detail {
	return catalog.Detail{
		Item: catalog.Item{
			ID:         25,
			Name:       "pikachu",
			Categories: []string{catalog.Electric},
			Stats: []catalog.Stat{
				{Name: "hp", Value: 35},
				{Name: "attack", Value: 55},
				{Name: "defense", Value: 40},
				{Name: "special-attack", Value: 50},
				{Name: "special-defense", Value: 50},
				{Name: "speed", Value: 90},
			},
		},
		Abilities:   []string{"static", "lightning-rod"},
		Description: "When several of these Pokémon gather, their electricity can build and cause lightning storms.",
		Genus:       "Mouse Pokémon",
		Habitat:     "forest",
	}
}
