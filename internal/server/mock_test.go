package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agenthands/pokedex/internal/catalog"
	"github.com/agenthands/pokedex/internal/llm"
)

type MockLLM struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests []llm.Request
}

func (m *MockLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockCatalog serves a fixed item list and detail table.
type MockCatalog struct {
	Items   []catalog.Item
	Details map[string]catalog.Detail
	Stages  []catalog.Evolution

	// FailWith is returned by the detail-style lookups when set.
	FailWith error

	// LoadGate, when non-nil, blocks Load until closed.
	LoadGate chan struct{}

	// LoadErr makes Load fail.
	LoadErr error

	mu        sync.Mutex
	loaded    bool
	loadedAt  time.Time
	lastErr   error
	loading   atomic.Bool
	loadCalls atomic.Int32
}

func (m *MockCatalog) Load(ctx context.Context) error {
	if !m.loading.CompareAndSwap(false, true) {
		return catalog.ErrLoadInProgress
	}
	defer m.loading.Store(false)
	m.loadCalls.Add(1)

	if m.LoadGate != nil {
		select {
		case <-m.LoadGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		m.lastErr = fmt.Errorf("failed to load catalog: %w", m.LoadErr)
		return m.lastErr
	}
	m.lastErr = nil
	m.loaded = true
	m.loadedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return nil
}

func (m *MockCatalog) Loading() bool { return m.loading.Load() }

func (m *MockCatalog) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *MockCatalog) LoadedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadedAt
}

func (m *MockCatalog) LastLoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *MockCatalog) ready() error {
	if m.Loaded() {
		return nil
	}
	if err := m.LastLoadError(); err != nil && !m.Loading() {
		return fmt.Errorf("%w: %w", catalog.ErrLoadFailed, err)
	}
	return catalog.ErrNotLoaded
}

func (m *MockCatalog) Len() int {
	if !m.Loaded() {
		return 0
	}
	return len(m.Items)
}

func (m *MockCatalog) Browse(state catalog.QueryState) (catalog.Result, error) {
	if err := m.ready(); err != nil {
		return catalog.Result{}, err
	}
	return catalog.Apply(m.Items, state), nil
}

func (m *MockCatalog) Suggest(term string, limit int) ([]catalog.Item, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	return catalog.Suggest(m.Items, term, limit), nil
}

func (m *MockCatalog) Detail(ctx context.Context, name string) (catalog.Detail, error) {
	if name == "boom" {
		panic("detail exploded")
	}
	if m.FailWith != nil {
		return catalog.Detail{}, m.FailWith
	}
	d, ok := m.Details[name]
	if !ok {
		return catalog.Detail{}, fmt.Errorf("pokemon %q: %w", name, catalog.ErrNotFound)
	}
	return d, nil
}

func (m *MockCatalog) Evolution(ctx context.Context, name string) ([]catalog.Evolution, error) {
	if _, err := m.Detail(ctx, name); err != nil {
		return nil, err
	}
	return m.Stages, nil
}

func (m *MockCatalog) Ability(ctx context.Context, name string) (catalog.AbilityInfo, error) {
	if name != "static" {
		return catalog.AbilityInfo{}, catalog.ErrNotFound
	}
	return catalog.AbilityInfo{Name: name, Effect: "May paralyze on contact.", ShortEffect: "Paralyzes."}, nil
}

func (m *MockCatalog) Move(ctx context.Context, name string) (catalog.MoveInfo, error) {
	if name != "thunderbolt" {
		return catalog.MoveInfo{}, errors.New("upstream timeout")
	}
	power := 90
	return catalog.MoveInfo{Name: name, Category: catalog.Electric, DamageClass: "special", Power: &power}, nil
}

func (m *MockCatalog) Showcase(ctx context.Context) (catalog.Showcase, error) {
	if !m.Loaded() {
		return catalog.Showcase{}, catalog.ErrNotLoaded
	}
	hero := m.Items[0]
	return catalog.Showcase{Hero: &hero, Featured: m.Items[:2]}, nil
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
				{Name: "speed", Value: 90},
			},
			Image: catalog.ImageRef{Sprite: "https://img.example/25.png"},
		},
		Abilities:        []string{"static", "lightning-rod"},
		HeightDecimeters: 4,
		WeightHectograms: 60,
		Description:      "When several of these Pokémon gather, their electricity can build and cause lightning storms.",
		Genus:            "Mouse Pokémon",
	}
}

func makeItems(n int) []catalog.Item {
	items := make([]catalog.Item, 0, n)
	for i := 1; i <= n; i++ {
		category := catalog.Fire
		if i%2 == 0 {
			category = catalog.Water
		}
		items = append(items, catalog.Item{
			ID:         i,
			Name:       fmt.Sprintf("mon-%03d", i),
			Categories: []string{category},
		})
	}
	return items
}
