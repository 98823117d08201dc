package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(4)

	var executed int32
	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		}
	}

	if err := p.Run(context.Background(), tasks); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if executed != 20 {
		t.Errorf("expected 20 executions, got %d", executed)
	}
}

func TestPool_AggregationIsOrderIndependent(t *testing.T) {
	p := NewPool(4)

	// Commutative disposition-keyed sums: concurrent merge order must
	// not change totals.
	var mu sync.Mutex
	totals := map[string]int{}
	add := func(disposition string, n int) Task {
		return func(ctx context.Context) error {
			mu.Lock()
			totals[disposition] += n
			mu.Unlock()
			return nil
		}
	}

	tasks := []Task{
		add("Awarded", 3), add("Awarded", 1),
		add("Dismissed", 2),
	}
	if err := p.Run(context.Background(), tasks); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if totals["Awarded"] != 4 || totals["Dismissed"] != 2 {
		t.Errorf("unexpected totals: %v", totals)
	}
}

func TestPool_FirstErrorCancelsRest(t *testing.T) {
	p := NewPool(1) // serial execution makes cancellation observable

	boom := errors.New("store unavailable")
	var after int32
	tasks := []Task{
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error {
			atomic.AddInt32(&after, 1)
			return nil
		},
	}

	err := p.Run(context.Background(), tasks)
	if !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
	if after != 0 {
		t.Errorf("expected later tasks skipped after failure, got %d executions", after)
	}
}

func TestPool_ContextCancellation(t *testing.T) {
	p := NewPool(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var executed int32
	tasks := []Task{
		func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		},
	}

	err := p.Run(ctx, tasks)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if executed != 0 {
		t.Errorf("expected no executions on a cancelled context, got %d", executed)
	}
}
