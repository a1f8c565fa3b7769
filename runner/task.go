package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Task represents an interface to be implemented by structs which
// represent a unit of work to be performed on a separate goroutine.
type Task interface {
	// Execute is called by a ThreadRunner, WorkerPool or Scheduler when
	// the task is dispatched for execution.
	Execute(context.Context) error

	// Description returns the description of the Task.
	Description() string
}

// TaskDetail conveys the identity of a given Task instance.
// A TaskDetail is created at submission time, executed and discarded;
// it has no persistent identity beyond the assigned id.
type TaskDetail struct {
	task Task
	id   uuid.UUID
	name string
}

// NewTaskDetail creates and returns a new TaskDetail for the task,
// assigning it a unique id. If name is empty, the task description
// is used instead.
func NewTaskDetail(task Task, name string) *TaskDetail {
	if name == "" && task != nil {
		name = task.Description()
	}
	return &TaskDetail{
		task: task,
		id:   uuid.New(),
		name: name,
	}
}

// Task returns the task.
func (td *TaskDetail) Task() Task {
	return td.task
}

// ID returns the unique task id.
func (td *TaskDetail) ID() uuid.UUID {
	return td.id
}

// Name returns the task name.
func (td *TaskDetail) Name() string {
	return td.name
}

// String returns the string representation of the TaskDetail.
func (td *TaskDetail) String() string {
	return fmt.Sprintf("%s::%s", td.name, td.id)
}

// executeTask runs the task, converting a panic raised by the task into
// an error which unwraps to ErrTaskPanic. Uncaught panics must not take
// down the goroutines of the executing runner.
func executeTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = taskPanicError(fmt.Sprintf("%v", p))
		}
	}()
	return task.Execute(ctx)
}
