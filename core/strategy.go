package core

import (
	"context"
	"sync"

	"github.com/mquintal/graphlens/internal/contract"
)

// InlineStrategy runs per-source passes synchronously on the calling
// goroutine. It is the default for small graphs where scheduling overhead
// would dominate the BFS work itself.
type InlineStrategy struct{}

var _ contract.ComputeStrategy = InlineStrategy{} // Compile-time check

// ForEachSource implements the ComputeStrategy interface.
func (InlineStrategy) ForEachSource(ctx context.Context, sources []string, fn func(source string) error) error {
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

// PoolStrategy runs per-source passes on a bounded worker pool. The pool
// size is fixed at construction; cancellation is checked before each
// source is claimed, so a cancel stops the pool between passes rather
// than mid-BFS.
type PoolStrategy struct {
	Workers int
}

var _ contract.ComputeStrategy = PoolStrategy{} // Compile-time check

// ForEachSource implements the ComputeStrategy interface.
func (p PoolStrategy) ForEachSource(ctx context.Context, sources []string, fn func(source string) error) error {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	sourceCh := make(chan string, len(sources))
	for _, s := range sources {
		sourceCh <- s
	}
	close(sourceCh)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	hasErr := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for range workers {
		wg.Go(func() {
			for s := range sourceCh {
				if err := ctx.Err(); err != nil {
					setErr(err)
					return
				}
				if hasErr() {
					return
				}
				if err := fn(s); err != nil {
					setErr(err)
					return
				}
			}
		})
	}
	wg.Wait()

	return firstErr
}

// strategyForConfig selects a compute strategy based on the configured
// worker count.
func strategyForConfig(cfg *contract.Config) contract.ComputeStrategy {
	if cfg.Workers <= 1 {
		return InlineStrategy{}
	}
	return PoolStrategy{Workers: cfg.Workers}
}
