package runner

import (
	"fmt"
	"time"

	"github.com/gorhill/cronexpr"
)

// Trigger represents the scheduling contract of a task submitted to a
// Scheduler. A Trigger answers when the task should fire next.
type Trigger interface {
	// NextFireTime returns the next time at which the task is scheduled
	// to fire, in UTC Unix nanoseconds, given the previous fire time.
	// An error indicates the trigger will not fire again.
	NextFireTime(prev int64) (int64, error)

	// Description returns the description of the Trigger.
	Description() string
}

// SimpleTrigger fires the task repeatedly at a fixed interval.
type SimpleTrigger struct {
	Interval time.Duration
}

var _ Trigger = (*SimpleTrigger)(nil)

// NewSimpleTrigger returns a new SimpleTrigger with the given interval.
func NewSimpleTrigger(interval time.Duration) *SimpleTrigger {
	return &SimpleTrigger{Interval: interval}
}

// NextFireTime returns the next time at which the task is scheduled to fire.
func (st *SimpleTrigger) NextFireTime(prev int64) (int64, error) {
	return prev + st.Interval.Nanoseconds(), nil
}

// Description returns the description of the trigger.
func (st *SimpleTrigger) Description() string {
	return fmt.Sprintf("SimpleTrigger with interval %s", st.Interval)
}

// RunOnceTrigger fires the task a single time after the given delay.
type RunOnceTrigger struct {
	Delay   time.Duration
	expired bool
}

var _ Trigger = (*RunOnceTrigger)(nil)

// NewRunOnceTrigger returns a new RunOnceTrigger with the given delay.
func NewRunOnceTrigger(delay time.Duration) *RunOnceTrigger {
	return &RunOnceTrigger{Delay: delay}
}

// NextFireTime returns the next time at which the task is scheduled to fire.
// A RunOnceTrigger fires exactly once and expires afterwards.
func (ot *RunOnceTrigger) NextFireTime(prev int64) (int64, error) {
	if !ot.expired {
		ot.expired = true
		return prev + ot.Delay.Nanoseconds(), nil
	}
	return 0, triggerExpiredError("RunOnceTrigger has already fired")
}

// Description returns the description of the trigger.
func (ot *RunOnceTrigger) Description() string {
	status := "valid"
	if ot.expired {
		status = "expired"
	}
	return fmt.Sprintf("RunOnceTrigger (%s)", status)
}

// CronTrigger fires the task on a schedule described by a cron
// expression, e.g. "0 0/5 * * * *".
type CronTrigger struct {
	expression  *cronexpr.Expression
	description string
}

var _ Trigger = (*CronTrigger)(nil)

// NewCronTrigger returns a new CronTrigger for the given cron expression.
// An invalid expression yields an error which unwraps to ErrCronParse.
func NewCronTrigger(expression string) (*CronTrigger, error) {
	parsed, err := cronexpr.Parse(expression)
	if err != nil {
		return nil, cronParseError(err.Error())
	}
	return &CronTrigger{
		expression:  parsed,
		description: fmt.Sprintf("CronTrigger %q", expression),
	}, nil
}

// NextFireTime returns the next time at which the task is scheduled to fire.
func (ct *CronTrigger) NextFireTime(prev int64) (int64, error) {
	next := ct.expression.Next(time.Unix(0, prev).UTC())
	if next.IsZero() {
		return 0, triggerExpiredError(ct.description)
	}
	return next.UnixNano(), nil
}

// Description returns the description of the trigger.
func (ct *CronTrigger) Description() string {
	return ct.description
}
