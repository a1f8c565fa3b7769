package runner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reugn/go-runner/internal/assert"
)

func TestIllegalArgumentError(t *testing.T) {
	message := "argument is nil"
	err := illegalArgumentError(message)
	if !errors.Is(err, ErrIllegalArgument) {
		t.Fatal("error must match ErrIllegalArgument")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrIllegalArgument, message))
}

func TestCronParseError(t *testing.T) {
	message := "invalid field"
	err := cronParseError(message)
	if !errors.Is(err, ErrCronParse) {
		t.Fatal("error must match ErrCronParse")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrCronParse, message))
}

func TestTaskNotFoundError(t *testing.T) {
	message := "for id"
	err := taskNotFoundError(message)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatal("error must match ErrTaskNotFound")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrTaskNotFound, message))
}

func TestTaskPanicError(t *testing.T) {
	message := "boom"
	err := taskPanicError(message)
	if !errors.Is(err, ErrTaskPanic) {
		t.Fatal("error must match ErrTaskPanic")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrTaskPanic, message))
}

func TestTriggerExpiredError(t *testing.T) {
	message := "RunOnceTrigger"
	err := triggerExpiredError(message)
	if !errors.Is(err, ErrTriggerExpired) {
		t.Fatal("error must match ErrTriggerExpired")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrTriggerExpired, message))
}
