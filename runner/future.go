package runner

import "context"

// Future is a completion handle for a dispatched task.
// It carries the task's terminal error, if any; typed results are read
// from the task instance that produced them.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{
		done: make(chan struct{}),
	}
}

// complete records the terminal error and marks the future as done.
// It must be called exactly once.
func (f *Future) complete(err error) {
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when the task has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether the task has completed.
func (f *Future) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the terminal error of the task, which is nil if the task
// completed successfully. If the task has not yet completed, Err returns
// ErrNotComplete.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return ErrNotComplete
	}
}

// Wait blocks until the task has completed and returns its terminal
// error. It returns the context error if ctx expires first.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
