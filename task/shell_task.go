package task

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/reugn/go-runner/runner"
)

// ShellTask represents a shell command Task, implements the runner.Task
// interface. Be aware of runtime.GOOS when sending shell commands for
// execution.
type ShellTask struct {
	sync.Mutex
	cmd      string
	exitCode int
	stdout   string
	stderr   string
	status   Status
	callback func(context.Context, *ShellTask)
}

var _ runner.Task = (*ShellTask)(nil)

// NewShellTask returns a new ShellTask for the given command.
func NewShellTask(cmd string) *ShellTask {
	return &ShellTask{
		cmd:    cmd,
		status: StatusNA,
	}
}

// NewShellTaskWithCallback returns a new ShellTask with the given callback
// function, which is invoked after the command has run.
func NewShellTaskWithCallback(cmd string, f func(context.Context, *ShellTask)) *ShellTask {
	return &ShellTask{
		cmd:      cmd,
		status:   StatusNA,
		callback: f,
	}
}

// Description returns the description of the ShellTask.
func (sh *ShellTask) Description() string {
	return fmt.Sprintf("ShellTask: %s", sh.cmd)
}

var (
	shellOnce = sync.Once{}
	shellPath = "bash"
)

func getShell() string {
	shellOnce.Do(func() {
		_, err := exec.LookPath("/bin/bash")
		// if not found bash binary, use `sh`.
		if err != nil {
			shellPath = "sh"
		}
	})
	return shellPath
}

// Execute is called by a runner when the task is dispatched for execution.
func (sh *ShellTask) Execute(ctx context.Context) error {
	shell := getShell()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", sh.cmd)
	cmd.Stdout = io.Writer(&stdout)
	cmd.Stderr = io.Writer(&stderr)

	err := cmd.Run()

	sh.Lock()
	sh.stdout = stdout.String()
	sh.stderr = stderr.String()
	sh.exitCode = cmd.ProcessState.ExitCode()

	if err != nil {
		sh.status = StatusFailure
	} else {
		sh.status = StatusOK
	}
	sh.Unlock()

	if sh.callback != nil {
		sh.callback(ctx, sh)
	}
	return err
}

// ExitCode returns the exit code of the ShellTask.
func (sh *ShellTask) ExitCode() int {
	sh.Lock()
	defer sh.Unlock()
	return sh.exitCode
}

// Stdout returns the captured stdout output of the ShellTask.
func (sh *ShellTask) Stdout() string {
	sh.Lock()
	defer sh.Unlock()
	return sh.stdout
}

// Stderr returns the captured stderr output of the ShellTask.
func (sh *ShellTask) Stderr() string {
	sh.Lock()
	defer sh.Unlock()
	return sh.stderr
}

// Status returns the status of the ShellTask.
func (sh *ShellTask) Status() Status {
	sh.Lock()
	defer sh.Unlock()
	return sh.status
}
