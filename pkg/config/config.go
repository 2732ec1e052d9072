package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// DefaultHelp is shown for a config that doesn't set help_message.
const DefaultHelp = "Your own trusty housekeeper.\n\nRun `domestobot <step_name> --help` to get more information about that\nparticular step.\n"

const exactlyOneCommandField = "exactly 1 of 'command', 'commands', 'shell_command', or 'shell_commands' must be specified and non-empty"

// CommandStep holds the command fields shared by every kind of step.
// Exactly one of the four command fields must be set.
type CommandStep struct {
	Title         string     `toml:"title"`
	Command       []string   `toml:"command"`
	Commands      [][]string `toml:"commands"`
	ShellCommand  string     `toml:"shell_command"`
	ShellCommands []string   `toml:"shell_commands"`
}

func (s CommandStep) commandFieldCount() int {
	n := 0
	if len(s.Command) > 0 {
		n++
	}
	if len(s.Commands) > 0 {
		n++
	}
	if s.ShellCommand != "" {
		n++
	}
	if len(s.ShellCommands) > 0 {
		n++
	}
	return n
}

// EnvStep is a command set that only applies on one operating system.
// The os field uses platform names: Linux, Darwin, or Windows.
type EnvStep struct {
	OS string `toml:"os"`
	CommandStep
}

// Validate checks that the env entry carries exactly one command field.
func (s EnvStep) Validate() error {
	if s.OS == "" {
		return errors.New("'os' is required")
	}
	if s.commandFieldCount() != 1 {
		return errors.New(exactlyOneCommandField)
	}
	return nil
}

// ShellStep is a named, documented step exposed as a CLI subcommand. It
// either carries its own command fields or a list of OS-conditional envs.
type ShellStep struct {
	Name string `toml:"name"`
	Doc  string `toml:"doc"`
	CommandStep
	Envs []EnvStep `toml:"envs"`
}

// Validate enforces the step invariant: exactly one of the command fields,
// or a non-empty envs list, but not both.
func (s ShellStep) Validate() error {
	ownFields := s.commandFieldCount() == 1
	hasEnvs := len(s.Envs) > 0
	if ownFields == hasEnvs {
		return errors.New("exactly 1 of 'command', 'commands', 'shell_command', 'shell_commands', or 'envs' must be specified and non-empty")
	}
	var merr *multierror.Error
	for i, env := range s.Envs {
		if err := env.Validate(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("envs[%d]: %w", i, err))
		}
	}
	return merr.ErrorOrNil()
}

// Config is one parsed config file. Instances are built once by Load and
// read-only afterward.
type Config struct {
	DefaultSubcommands []string    `toml:"default_subcommands"`
	HelpMessage        string      `toml:"help_message"`
	Steps              []ShellStep `toml:"steps"`
	SubDomestobots     []string    `toml:"sub_domestobots"`
	Repos              []string    `toml:"repos"`
}

// Validate checks structural invariants across the whole document and
// reports every violation, not just the first one. Default subcommand
// names are deliberately not checked here: they resolve lazily at
// invocation time against the registered callbacks.
func (c *Config) Validate() error {
	var merr *multierror.Error
	seen := make(map[string]bool)
	for i, step := range c.Steps {
		name := step.Name
		if name == "" {
			merr = multierror.Append(merr, fmt.Errorf("steps[%d]: 'name' is required", i))
			name = fmt.Sprintf("steps[%d]", i)
		} else if seen[name] {
			merr = multierror.Append(merr, fmt.Errorf("duplicate step name %q", name))
		}
		seen[name] = true

		if step.Doc == "" {
			merr = multierror.Append(merr, fmt.Errorf("step %q: 'doc' is required", name))
		}
		if err := step.Validate(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("step %q: %w", name, err))
		}
	}
	return merr.ErrorOrNil()
}
