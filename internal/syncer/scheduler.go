package syncer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"harmonize/internal/model"
)

// Scheduler is a bounded pool over conversion tasks.
//
// Submit only queues and never blocks; the concurrency bound is enforced
// where tasks start running, not where they are accepted. Drain runs up to
// the configured limit simultaneously, starting the next queued task the
// moment a running one finishes, and delivers results in completion order.
// The driver can log and aggregate progress without waiting for any
// particular task, and the pool stays saturated.
type Scheduler struct {
	limit int
	tasks []model.ConversionTask
}

// NewScheduler creates a scheduler running at most limit tasks at once.
// A non-positive limit means available parallelism.
func NewScheduler(limit int) *Scheduler {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Scheduler{limit: limit}
}

// Submit queues a task. It must not be called after Drain.
func (s *Scheduler) Submit(task model.ConversionTask) {
	s.tasks = append(s.tasks, task)
}

// Len returns the number of queued tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Drain starts executing the queued tasks and returns a channel that yields
// exactly one result per submitted task, in completion order. The channel
// is closed once every task has produced its result; a failing task vacates
// its slot like any other and never stops the drain.
func (s *Scheduler) Drain(ctx context.Context, run func(ctx context.Context, task model.ConversionTask) model.ConversionResult) <-chan model.ConversionResult {
	results := make(chan model.ConversionResult)

	go func() {
		defer close(results)

		var g errgroup.Group
		g.SetLimit(s.limit)
		for _, task := range s.tasks {
			g.Go(func() error {
				results <- run(ctx, task)
				return nil
			})
		}
		g.Wait()
	}()

	return results
}
