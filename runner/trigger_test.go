package runner_test

import (
	"testing"
	"time"

	"github.com/reugn/go-runner/internal/assert"
	"github.com/reugn/go-runner/runner"
)

func TestSimpleTrigger(t *testing.T) {
	trigger := runner.NewSimpleTrigger(time.Second)
	assert.Equal(t, trigger.Description(), "SimpleTrigger with interval 1s")

	prev := runner.NowNano()
	next, err := trigger.NextFireTime(prev)
	assert.IsNil(t, err)
	assert.Equal(t, next, prev+time.Second.Nanoseconds())

	next2, err := trigger.NextFireTime(next)
	assert.IsNil(t, err)
	assert.Equal(t, next2, prev+2*time.Second.Nanoseconds())
}

func TestRunOnceTrigger(t *testing.T) {
	trigger := runner.NewRunOnceTrigger(time.Second)
	assert.Equal(t, trigger.Description(), "RunOnceTrigger (valid)")

	prev := runner.NowNano()
	next, err := trigger.NextFireTime(prev)
	assert.IsNil(t, err)
	assert.Equal(t, next, prev+time.Second.Nanoseconds())

	_, err = trigger.NextFireTime(next)
	assert.ErrorIs(t, err, runner.ErrTriggerExpired)
	assert.Equal(t, trigger.Description(), "RunOnceTrigger (expired)")
}

func TestCronTrigger(t *testing.T) {
	trigger, err := runner.NewCronTrigger("0 0 10 * * *")
	assert.IsNil(t, err)
	assert.Equal(t, trigger.Description(), `CronTrigger "0 0 10 * * *"`)

	prev := time.Date(2024, 4, 22, 9, 0, 0, 0, time.UTC).UnixNano()
	next, err := trigger.NextFireTime(prev)
	assert.IsNil(t, err)
	assert.Equal(t, next, time.Date(2024, 4, 22, 10, 0, 0, 0, time.UTC).UnixNano())

	next2, err := trigger.NextFireTime(next)
	assert.IsNil(t, err)
	assert.Equal(t, next2, time.Date(2024, 4, 23, 10, 0, 0, 0, time.UTC).UnixNano())
}

func TestCronTrigger_ParseError(t *testing.T) {
	_, err := runner.NewCronTrigger("not a cron expression")
	assert.ErrorIs(t, err, runner.ErrCronParse)
}
