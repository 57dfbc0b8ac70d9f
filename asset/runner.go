package asset

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Runner executes load jobs off the simulation thread. The path is only
// informational; implementations may use it to schedule or to identify jobs.
type Runner interface {
	Go(path string, job func())
}

// PoolRunner runs each job on its own goroutine while a weighted semaphore
// caps how many read and decode at once.
type PoolRunner struct {
	sem *semaphore.Weighted
}

func NewPoolRunner(concurrency int) *PoolRunner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PoolRunner{sem: semaphore.NewWeighted(int64(concurrency))}
}

func (p *PoolRunner) Go(_ string, job func()) {
	if job == nil {
		return
	}
	go func() {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		job()
	}()
}
