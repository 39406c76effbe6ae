package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs submitted jobs on at most a fixed number of goroutines.
// A pool serves a single run: create it, Submit every job, then Wait.
type WorkerPool[T any] struct {
	group   *errgroup.Group
	workers int
}

// NewWorkerPool returns a pool of maxWorkers workers, or one worker per
// logical CPU when maxWorkers is not positive.
func NewWorkerPool[T any](maxWorkers int) *WorkerPool[T] {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	g := new(errgroup.Group)
	g.SetLimit(maxWorkers)
	return &WorkerPool[T]{group: g, workers: maxWorkers}
}

func (p *WorkerPool[T]) Size() int {
	return p.workers
}

// Submit blocks until a worker is free, then runs handler on job. Jobs
// submitted after ctx is done are dropped without calling handler.
func (p *WorkerPool[T]) Submit(ctx context.Context, job T, handler func(context.Context, T)) {
	p.group.Go(func() error {
		if ctx.Err() != nil {
			return nil
		}
		handler(ctx, job)
		return nil
	})
}

func (p *WorkerPool[T]) Wait() {
	_ = p.group.Wait()
}
