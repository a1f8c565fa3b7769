package task

import (
	"context"
	"errors"

	"github.com/reugn/go-runner/runner"
)

// Await runs the function on a new goroutine and blocks until its result
// is available, returning the result or the error produced by the
// function. A panic inside the function is recovered and delivered as an
// error which unwraps to runner.ErrTaskPanic.
func Await[R any](ctx context.Context, r *runner.ThreadRunner,
	function Function[R]) (R, error) {
	var zero R
	functionTask := NewFunctionTask(function)
	future, err := r.Run(ctx, runner.NewTaskDetail(functionTask, ""))
	if err != nil {
		return zero, err
	}

	if err := future.Wait(ctx); err != nil {
		return zero, err
	}

	result := functionTask.Result()
	if result == nil {
		return zero, functionTask.Error()
	}
	return *result, nil
}

// AwaitAll runs each of the functions on its own goroutine and blocks
// until all of them have returned. The results are returned in the input
// order together with the joined errors of the failed functions.
func AwaitAll[R any](ctx context.Context, r *runner.ThreadRunner,
	functions ...Function[R]) ([]R, error) {
	tasks := make([]*FunctionTask[R], 0, len(functions))
	futures := make([]*runner.Future, 0, len(functions))
	for _, function := range functions {
		functionTask := NewFunctionTask(function)
		future, err := r.Run(ctx, runner.NewTaskDetail(functionTask, ""))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, functionTask)
		futures = append(futures, future)
	}

	var errs []error
	results := make([]R, len(functions))
	for i, future := range futures {
		if err := future.Wait(ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		if result := tasks[i].Result(); result != nil {
			results[i] = *result
		}
	}

	return results, errors.Join(errs...)
}
