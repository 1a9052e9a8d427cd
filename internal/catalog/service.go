package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/pokedex/internal/pokeapi"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotLoaded is returned by catalog queries before the first load.
	ErrNotLoaded = errors.New("catalog not loaded yet")
	// ErrLoadInProgress is returned by Load while another load is running.
	ErrLoadInProgress = errors.New("catalog load already in progress")
	// ErrLoadFailed is returned by catalog queries when no load has
	// succeeded and none is running.
	ErrLoadFailed = errors.New("catalog load failed")
)

// DefaultSuggestLimit is the autocomplete list length.
const DefaultSuggestLimit = 5

// fetchConcurrency bounds the per-request fan-out for showcase and
// evolution images.
const fetchConcurrency = 8

// API is the remote surface the service reads from.
type API interface {
	Source
	Species(ctx context.Context, url string) (*pokeapi.Species, error)
	EvolutionChain(ctx context.Context, url string) (*pokeapi.EvolutionChain, error)
	Ability(ctx context.Context, name string) (*pokeapi.Ability, error)
	Move(ctx context.Context, name string) (*pokeapi.Move, error)
}

type Options struct {
	ListLimit int
	BatchSize int
	// Rand drives hero and popular picks. Nil uses a time-seeded source.
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Service owns the catalog collection and answers every read the HTTP
// surface needs.
type Service struct {
	api        API
	aggregator *Aggregator
	items      *Collection
	logger     *zap.Logger
	loading    atomic.Bool

	errMu   sync.RWMutex
	loadErr error

	randMu sync.Mutex
	rand   *rand.Rand

	heroMu sync.RWMutex
	hero   *Item

	memoMu    sync.Mutex
	abilities map[string]AbilityInfo
	moves     map[string]MoveInfo
}

func NewService(api API, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := opts.Rand
	if r == nil {
		seed := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Service{
		api:        api,
		aggregator: NewAggregator(api, opts.ListLimit, opts.BatchSize, logger),
		items:      NewCollection(),
		logger:     logger,
		rand:       r,
		abilities:  make(map[string]AbilityInfo),
		moves:      make(map[string]MoveInfo),
	}
}

// Load runs the full aggregation and replaces the collection. On failure
// the previous collection is kept.
func (s *Service) Load(ctx context.Context) error {
	if !s.loading.CompareAndSwap(false, true) {
		return ErrLoadInProgress
	}
	defer s.loading.Store(false)

	start := time.Now()
	items, err := s.aggregator.FetchAll(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load catalog: %w", err)
		s.setLoadErr(err)
		return err
	}
	s.items.Replace(items)
	s.setLoadErr(nil)

	s.logger.Info("Catalog loaded",
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Service) Loading() bool { return s.loading.Load() }

func (s *Service) Loaded() bool { return s.items.Loaded() }

func (s *Service) LoadedAt() time.Time { return s.items.LoadedAt() }

func (s *Service) Len() int { return s.items.Len() }

// LastLoadError returns the error of the most recent load, or nil when it
// succeeded or no load has finished yet.
func (s *Service) LastLoadError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()
	return s.loadErr
}

func (s *Service) setLoadErr(err error) {
	s.errMu.Lock()
	s.loadErr = err
	s.errMu.Unlock()
}

// ready reports why the collection cannot be queried yet, if it cannot.
func (s *Service) ready() error {
	if s.items.Loaded() {
		return nil
	}
	if err := s.LastLoadError(); err != nil && !s.Loading() {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return ErrNotLoaded
}

// Tick is the periodic background task. It retries the full load until one
// has succeeded and rotates the hero afterwards.
func (s *Service) Tick(ctx context.Context) error {
	if !s.items.Loaded() {
		err := s.Load(ctx)
		if errors.Is(err, ErrLoadInProgress) {
			return nil
		}
		return err
	}
	return s.RefreshHero(ctx)
}

// Browse applies the query state to the current collection.
func (s *Service) Browse(state QueryState) (Result, error) {
	if err := s.ready(); err != nil {
		return Result{}, err
	}
	return Apply(s.items.Snapshot(), state), nil
}

func (s *Service) Suggest(term string, limit int) ([]Item, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DefaultSuggestLimit
	}
	return Suggest(s.items.Snapshot(), term, limit), nil
}

// Detail fetches a pokemon and its species. A species failure other than
// cancellation is logged and the detail is returned without species facts.
func (s *Service) Detail(ctx context.Context, name string) (Detail, error) {
	p, err := s.api.Pokemon(ctx, name)
	if err != nil {
		return Detail{}, mapNotFound(err, "pokemon %q", name)
	}

	var species *pokeapi.Species
	if p.Species.URL != "" {
		species, err = s.api.Species(ctx, p.Species.URL)
		if err != nil {
			if ctx.Err() != nil {
				return Detail{}, ctx.Err()
			}
			s.logger.Warn("Species fetch failed",
				zap.String("pokemon", p.Name),
				zap.Error(err))
			species = nil
		}
	}
	return DetailFrom(p, species), nil
}

// Evolution returns the flattened evolution chain of a pokemon with an
// image resolved for each stage. Image failures leave the image empty.
func (s *Service) Evolution(ctx context.Context, name string) ([]Evolution, error) {
	p, err := s.api.Pokemon(ctx, name)
	if err != nil {
		return nil, mapNotFound(err, "pokemon %q", name)
	}
	if p.Species.URL == "" {
		return []Evolution{}, nil
	}
	species, err := s.api.Species(ctx, p.Species.URL)
	if err != nil {
		return nil, mapNotFound(err, "species of %q", name)
	}
	if species.EvolutionChain == nil || species.EvolutionChain.URL == "" {
		return []Evolution{}, nil
	}
	chain, err := s.api.EvolutionChain(ctx, species.EvolutionChain.URL)
	if err != nil {
		return nil, mapNotFound(err, "evolution chain of %q", name)
	}

	stages := FlattenEvolutions(chain.Chain)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)
	for i := range stages {
		if stages[i].ID == 0 {
			continue
		}
		eg.Go(func() error {
			item, err := s.itemByID(egCtx, stages[i].ID)
			if err != nil {
				s.logger.Debug("Evolution image unavailable",
					zap.Int("id", stages[i].ID),
					zap.Error(err))
				return nil
			}
			stages[i].ImageURL = item.Image.URL()
			return nil
		})
	}
	_ = eg.Wait()

	return stages, nil
}

// Ability returns an ability summary, memoised for the process lifetime.
func (s *Service) Ability(ctx context.Context, name string) (AbilityInfo, error) {
	s.memoMu.Lock()
	info, ok := s.abilities[name]
	s.memoMu.Unlock()
	if ok {
		return info, nil
	}

	a, err := s.api.Ability(ctx, name)
	if err != nil {
		return AbilityInfo{}, mapNotFound(err, "ability %q", name)
	}
	info = AbilityInfoFrom(a)

	s.memoMu.Lock()
	s.abilities[name] = info
	s.memoMu.Unlock()
	return info, nil
}

// Move returns a move summary, memoised for the process lifetime.
func (s *Service) Move(ctx context.Context, name string) (MoveInfo, error) {
	s.memoMu.Lock()
	info, ok := s.moves[name]
	s.memoMu.Unlock()
	if ok {
		return info, nil
	}

	m, err := s.api.Move(ctx, name)
	if err != nil {
		return MoveInfo{}, mapNotFound(err, "move %q", name)
	}
	info = MoveInfoFrom(m)

	s.memoMu.Lock()
	s.moves[name] = info
	s.memoMu.Unlock()
	return info, nil
}

// Hero returns the current hero pick, or nil before the first refresh.
func (s *Service) Hero() *Item {
	s.heroMu.RLock()
	defer s.heroMu.RUnlock()
	return s.hero
}

// RefreshHero picks a new random hero. On failure the previous hero stays.
func (s *Service) RefreshHero(ctx context.Context) error {
	s.randMu.Lock()
	id := RandomHeroID(s.rand)
	s.randMu.Unlock()

	item, err := s.itemByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to refresh hero %d: %w", id, err)
	}

	s.heroMu.Lock()
	s.hero = &item
	s.heroMu.Unlock()
	return nil
}

// Showcase assembles the home page selections. Individual lookups that
// fail are left out.
func (s *Service) Showcase(ctx context.Context) (Showcase, error) {
	if s.Hero() == nil {
		if err := s.RefreshHero(ctx); err != nil {
			s.logger.Warn("Hero unavailable", zap.Error(err))
		}
	}

	s.randMu.Lock()
	popular := PopularIDs(s.rand)
	s.randMu.Unlock()

	out := Showcase{Hero: s.Hero()}
	groups := []struct {
		ids  []int
		dest *[]Item
	}{
		{FeaturedIDs, &out.Featured},
		{popular, &out.Popular},
		{LegendaryIDs, &out.Legendary},
		{StarterIDs, &out.Starters},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, g := range groups {
		eg.Go(func() error {
			*g.dest = s.itemsByID(egCtx, g.ids)
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return Showcase{}, err
	}
	return out, nil
}

// itemByID prefers the loaded collection and falls back to the API.
func (s *Service) itemByID(ctx context.Context, id int) (Item, error) {
	if item, ok := s.items.ByID(id); ok {
		return item, nil
	}
	p, err := s.api.Pokemon(ctx, strconv.Itoa(id))
	if err != nil {
		return Item{}, mapNotFound(err, "pokemon %d", id)
	}
	return ItemFromPokemon(p), nil
}

// itemsByID resolves ids concurrently, keeping input order and dropping
// failures.
func (s *Service) itemsByID(ctx context.Context, ids []int) []Item {
	resolved := make([]*Item, len(ids))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)
	for i, id := range ids {
		eg.Go(func() error {
			item, err := s.itemByID(egCtx, id)
			if err != nil {
				s.logger.Debug("Showcase item unavailable", zap.Int("id", id), zap.Error(err))
				return nil
			}
			resolved[i] = &item
			return nil
		})
	}
	_ = eg.Wait()

	out := make([]Item, 0, len(ids))
	for _, item := range resolved {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}

func mapNotFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, pokeapi.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}
