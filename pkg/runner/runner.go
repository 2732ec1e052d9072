package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const defaultShell = "/bin/sh"

// Opts controls how a single invocation is executed.
type Opts struct {
	// Shell runs args[0] through the shell instead of spawning it as an
	// argument vector.
	Shell bool
	// CaptureOutput collects stdout/stderr into the Result instead of
	// inheriting the parent's streams.
	CaptureOutput bool
}

// Result is the outcome of one completed invocation.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   []byte
}

// Runner executes an OS process given an argument vector or shell string.
type Runner interface {
	Run(args []string, opts Opts) (Result, error)
}

// ExitError reports a spawned process that returned a non-zero status.
type ExitError struct {
	Args   []string
	Code   int
	Stderr []byte
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", strings.Join(e.Args, " "), e.Code)
}

// ExecRunner spawns the process and waits for it to complete.
type ExecRunner struct{}

func (ExecRunner) Run(args []string, opts Opts) (Result, error) {
	if len(args) == 0 {
		return Result{}, errors.New("no command given")
	}

	var cmd *exec.Cmd
	if opts.Shell {
		// #nosec G204
		cmd = exec.Command(defaultShell, "-c", args[0])
	} else {
		// #nosec G204
		cmd = exec.Command(args[0], args[1:]...)
	}

	var stdout, stderr bytes.Buffer
	if opts.CaptureOutput {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, &ExitError{
				Args:   args,
				Code:   exitErr.ExitCode(),
				Stderr: stderr.Bytes(),
			}
		}
		return Result{}, fmt.Errorf("running %q: %w", strings.Join(args, " "), err)
	}
	return Result{Args: args, Stdout: stdout.Bytes()}, nil
}

// DryRunner prints the invocation instead of executing it and reports a
// synthetic successful result.
type DryRunner struct {
	Out io.Writer
}

func (d *DryRunner) Run(args []string, opts Opts) (Result, error) {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, strings.Join(args, " "))
	return Result{Args: args}, nil
}
