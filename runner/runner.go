package runner

import (
	"context"
	"sync"
	"time"

	"github.com/reugn/go-runner/logger"
)

// ThreadRunner executes tasks on separate goroutines with lifecycle
// logging. Dispatch is fire-and-forget: Run returns to the caller
// immediately and the outcome is delivered through the returned Future.
type ThreadRunner struct {
	logger logger.Logger
	wg     sync.WaitGroup
}

// NewThreadRunner returns a new ThreadRunner using the default logger.
func NewThreadRunner() *ThreadRunner {
	return NewThreadRunnerWithLogger(logger.Default())
}

// NewThreadRunnerWithLogger returns a new ThreadRunner using the
// given logger.
func NewThreadRunnerWithLogger(l logger.Logger) *ThreadRunner {
	if l == nil {
		l = logger.NoOpLogger{}
	}
	return &ThreadRunner{logger: l}
}

// Run starts the task on a new goroutine and returns a Future for its
// completion without waiting for the task to return.
// An error returned by the task is logged at the error level and
// delivered through the Future; a panic inside the task is recovered,
// wrapped in ErrTaskPanic and delivered the same way.
func (r *ThreadRunner) Run(ctx context.Context, detail *TaskDetail) (*Future, error) {
	if detail == nil || detail.Task() == nil {
		return nil, illegalArgumentError("detail is nil")
	}

	future := newFuture()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.execute(ctx, detail, future)
	}()

	return future, nil
}

// RunAll starts each of the tasks on its own goroutine and returns the
// completion futures in the input order.
func (r *ThreadRunner) RunAll(ctx context.Context, details ...*TaskDetail) ([]*Future, error) {
	futures := make([]*Future, 0, len(details))
	for _, detail := range details {
		future, err := r.Run(ctx, detail)
		if err != nil {
			return futures, err
		}
		futures = append(futures, future)
	}
	return futures, nil
}

// Wait blocks until all tasks dispatched by the runner have returned.
// Wait will return early when the context passed to it has expired.
func (r *ThreadRunner) Wait(ctx context.Context) {
	sig := make(chan struct{})
	go func() { defer close(sig); r.wg.Wait() }()
	select {
	case <-ctx.Done():
	case <-sig:
	}
}

func (r *ThreadRunner) execute(ctx context.Context, detail *TaskDetail, future *Future) {
	start := time.Now()
	r.logger.Info("Task started", "id", detail.ID(), "name", detail.Name())

	err := executeTask(ctx, detail.Task())
	if err != nil {
		r.logger.Error("Task failed", "id", detail.ID(), "name", detail.Name(),
			"error", err)
	} else {
		r.logger.Info("Task completed", "id", detail.ID(), "name", detail.Name(),
			"elapsed", time.Since(start))
	}

	future.complete(err)
}
