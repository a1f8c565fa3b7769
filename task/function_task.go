package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/reugn/go-runner/runner"
)

// Function represents an argument-less function which returns
// a generic type R and a possible error.
type Function[R any] func(context.Context) (R, error)

// FunctionTask represents a Task that invokes the passed Function,
// implements the runner.Task interface.
type FunctionTask[R any] struct {
	mtx      sync.RWMutex
	function Function[R]
	desc     string
	result   *R
	err      error
	status   Status
}

var _ runner.Task = (*FunctionTask[any])(nil)

// NewFunctionTask returns a new FunctionTask without an explicit description.
func NewFunctionTask[R any](function Function[R]) *FunctionTask[R] {
	return &FunctionTask[R]{
		function: function,
		desc:     fmt.Sprintf("FunctionTask:%p", &function),
		status:   StatusNA,
	}
}

// NewFunctionTaskWithDesc returns a new FunctionTask with an explicit
// description.
func NewFunctionTaskWithDesc[R any](function Function[R], desc string) *FunctionTask[R] {
	return &FunctionTask[R]{
		function: function,
		desc:     desc,
		status:   StatusNA,
	}
}

// Description returns the description of the FunctionTask.
func (f *FunctionTask[R]) Description() string {
	return f.desc
}

// Execute is called by a runner when the task is dispatched for execution.
// It invokes the held function, setting the result, error and status members.
func (f *FunctionTask[R]) Execute(ctx context.Context) error {
	result, err := f.function(ctx)
	f.mtx.Lock()
	if err != nil {
		f.status = StatusFailure
		f.result = nil
		f.err = err
	} else {
		f.status = StatusOK
		f.result = &result
		f.err = nil
	}
	f.mtx.Unlock()
	return err
}

// Result returns the result of the FunctionTask.
func (f *FunctionTask[R]) Result() *R {
	f.mtx.RLock()
	defer f.mtx.RUnlock()
	return f.result
}

// Error returns the error of the FunctionTask.
func (f *FunctionTask[R]) Error() error {
	f.mtx.RLock()
	defer f.mtx.RUnlock()
	return f.err
}

// Status returns the status of the FunctionTask.
func (f *FunctionTask[R]) Status() Status {
	f.mtx.RLock()
	defer f.mtx.RUnlock()
	return f.status
}
