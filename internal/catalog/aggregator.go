package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/pokedex/internal/pokeapi"
)

const (
	DefaultListLimit = 1025
	DefaultBatchSize = 20
)

// Source is the slice of the remote API the aggregator needs.
type Source interface {
	List(ctx context.Context, limit int) (*pokeapi.ListResponse, error)
	Pokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error)
}

// Aggregator fetches the bulk listing and then every item's details in
// fixed-width batches. Batches run one after another; requests inside a
// batch run concurrently.
type Aggregator struct {
	source    Source
	limit     int
	batchSize int
	logger    *zap.Logger
}

func NewAggregator(source Source, limit, batchSize int, logger *zap.Logger) *Aggregator {
	if limit < 1 {
		limit = DefaultListLimit
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		source:    source,
		limit:     limit,
		batchSize: batchSize,
		logger:    logger,
	}
}

// FetchAll returns every item whose detail fetch succeeded. A failed listing
// aborts with an error; a failed detail fetch only drops that item. The
// order of the result is not meaningful.
func (a *Aggregator) FetchAll(ctx context.Context) ([]Item, error) {
	list, err := a.source.List(ctx, a.limit)
	if err != nil {
		a.logger.Error("Failed to fetch catalog listing", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	items := make([]Item, 0, len(list.Results))
	dropped := 0

	for start := 0; start < len(list.Results); start += a.batchSize {
		end := min(start+a.batchSize, len(list.Results))
		batch := list.Results[start:end]
		fetched := make([]*Item, len(batch))

		eg, egCtx := errgroup.WithContext(ctx)
		for i, ref := range batch {
			eg.Go(func() error {
				p, err := a.source.Pokemon(egCtx, ref.Name)
				if err != nil {
					a.logger.Warn("Dropping catalog item",
						zap.String("name", ref.Name),
						zap.Error(err))
					return nil
				}
				item := ItemFromPokemon(p)
				fetched[i] = &item
				return nil
			})
		}
		// Workers never return an error; Wait is only a join.
		_ = eg.Wait()

		for _, item := range fetched {
			if item == nil {
				dropped++
				continue
			}
			items = append(items, *item)
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("aggregation interrupted: %w", err)
		}
	}

	a.logger.Info("Catalog aggregated",
		zap.Int("listed", len(list.Results)),
		zap.Int("fetched", len(items)),
		zap.Int("dropped", dropped))

	return items, nil
}
