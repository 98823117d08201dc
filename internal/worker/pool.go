// Package worker provides the bounded fan-out used for per-name
// aggregation. Disposition-keyed sums are commutative, so per-name
// store round-trips may run concurrently without changing results.
package worker

import (
	"context"
	"sync"
)

// Task is one unit of aggregation work, typically a store round-trip
// for a single resolved name variant.
type Task func(ctx context.Context) error

// Pool runs tasks with bounded concurrency. A task error cancels the
// remaining tasks; partial aggregates are for the caller to discard.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given concurrency bound.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all tasks and returns the first error, if any. The
// context is cancelled as soon as a task fails, so in-flight store
// round-trips stop cooperatively.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan Task)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if ctx.Err() != nil {
					continue // drain without executing
				}
				if err := task(ctx); err != nil {
					fail(err)
				}
			}
		}()
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
