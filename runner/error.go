package runner

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrIllegalArgument = errors.New("illegal argument")
	ErrCronParse       = errors.New("parse cron expression")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskPanic       = errors.New("task panic")
	ErrTriggerExpired  = errors.New("trigger is expired")
	ErrPoolClosed      = errors.New("worker pool is closed")
	ErrNotComplete     = errors.New("future is not complete")
)

// illegalArgumentError returns an illegal argument error with a custom
// error message, which unwraps to ErrIllegalArgument.
func illegalArgumentError(message string) error {
	return fmt.Errorf("%w: %s", ErrIllegalArgument, message)
}

// cronParseError returns a cron parse error with a custom error message,
// which unwraps to ErrCronParse.
func cronParseError(message string) error {
	return fmt.Errorf("%w: %s", ErrCronParse, message)
}

// taskNotFoundError returns a task not found error with a custom error
// message, which unwraps to ErrTaskNotFound.
func taskNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrTaskNotFound, message)
}

// taskPanicError returns a task panic error with a custom error message,
// which unwraps to ErrTaskPanic.
func taskPanicError(message string) error {
	return fmt.Errorf("%w: %s", ErrTaskPanic, message)
}

// triggerExpiredError returns a trigger expired error with a custom error
// message, which unwraps to ErrTriggerExpired.
func triggerExpiredError(message string) error {
	return fmt.Errorf("%w: %s", ErrTriggerExpired, message)
}
