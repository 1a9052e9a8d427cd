package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher runs a task on a fixed interval until stopped.
type Refresher struct {
	interval time.Duration
	task     func(ctx context.Context) error
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefresher(interval time.Duration, task func(ctx context.Context) error, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{interval: interval, task: task, logger: logger}
}

// Start launches the background loop. Calling Start on a running refresher
// is a no-op. A non-positive interval disables the loop.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil || r.interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.task(ctx); err != nil && ctx.Err() == nil {
				r.logger.Warn("Refresh tick failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
