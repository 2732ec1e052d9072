package runner

import (
	"errors"
	"os"
)

// Mode is the two-valued execution mode, set once per process invocation.
type Mode int

const (
	ModeDefault Mode = iota
	ModeDryRun
)

// Selector is a Runner that delegates to the runner for the current mode.
// Step callables capture a Selector at assembly time, so flipping the mode
// before any step runs redirects every subsequent invocation.
type Selector struct {
	mode Mode
	exec Runner
	dry  Runner
}

// NewSelector returns a Selector over the real process runner and a dry
// runner printing to stdout.
func NewSelector() *Selector {
	return NewSelectorWith(ExecRunner{}, &DryRunner{Out: os.Stdout})
}

// NewSelectorWith builds a Selector over explicit runners.
func NewSelectorWith(exec, dry Runner) *Selector {
	return &Selector{exec: exec, dry: dry}
}

func (s *Selector) Mode() Mode {
	return s.mode
}

// EnableDryRun switches to dry-run mode. The mode can only be set once:
// enabling it again, e.g. from a subcommand flag when an ancestor already
// set it, is a usage error.
func (s *Selector) EnableDryRun() error {
	if s.mode == ModeDryRun {
		return errors.New("dry-run mode is already enabled")
	}
	s.mode = ModeDryRun
	return nil
}

func (s *Selector) Run(args []string, opts Opts) (Result, error) {
	if s.mode == ModeDryRun {
		return s.dry.Run(args, opts)
	}
	return s.exec.Run(args, opts)
}
