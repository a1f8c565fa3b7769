package task

// Status represents a Task status.
type Status int8

const (
	// StatusNA is the initial Task status.
	StatusNA Status = iota

	// StatusOK indicates that the Task completed successfully.
	StatusOK

	// StatusFailure indicates that the Task failed.
	StatusFailure
)
