package steps

import (
	"runtime"

	"github.com/arnavsurve/domestobot/pkg/config"
	"github.com/arnavsurve/domestobot/pkg/runner"
)

// Resolved is the zero-argument executable form of a configured step,
// bound to a runner. Name and Doc become the CLI subcommand's name and
// description.
type Resolved struct {
	Name string
	Doc  string
	Run  func() error
}

// Resolve expands each step into its resolved callables for the current
// platform. A step whose envs list has no entry for this OS contributes
// nothing, silently: that's how platform-specific steps no-op elsewhere.
func Resolve(steps []config.ShellStep, r runner.Runner) []Resolved {
	return ResolveForOS(steps, CurrentOS(), r)
}

// ResolveForOS is Resolve with an explicit platform name (Linux, Darwin,
// Windows). A step with several env entries for the same platform still
// resolves to a single callable running every matching set in declaration
// order, so the step maps to exactly one subcommand.
func ResolveForOS(steps []config.ShellStep, osName string, r runner.Runner) []Resolved {
	var resolved []Resolved
	for _, step := range steps {
		sets := commandSets(step, osName)
		if len(sets) == 0 {
			continue
		}
		resolved = append(resolved, newResolved(sets, step.Name, step.Doc, r))
	}
	return resolved
}

// CurrentOS returns the runtime platform under the names env steps use.
func CurrentOS() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return runtime.GOOS
	}
}

func commandSets(step config.ShellStep, osName string) []config.CommandStep {
	if len(step.Envs) == 0 {
		return []config.CommandStep{step.CommandStep}
	}
	var sets []config.CommandStep
	for _, env := range step.Envs {
		if env.OS == osName {
			sets = append(sets, env.CommandStep)
		}
	}
	return sets
}

func newResolved(sets []config.CommandStep, name, doc string, r runner.Runner) Resolved {
	return Resolved{
		Name: name,
		Doc:  doc,
		Run: func() error {
			for _, set := range sets {
				if err := runSet(set, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runSet(set config.CommandStep, r runner.Runner) error {
	if set.Title != "" {
		Title(set.Title)
	}
	switch {
	case len(set.Command) > 0:
		_, err := r.Run(set.Command, runner.Opts{})
		return err
	case len(set.Commands) > 0:
		for _, command := range set.Commands {
			if _, err := r.Run(command, runner.Opts{}); err != nil {
				return err
			}
		}
		return nil
	case set.ShellCommand != "":
		_, err := r.Run([]string{set.ShellCommand}, runner.Opts{Shell: true})
		return err
	default:
		for _, command := range set.ShellCommands {
			if _, err := r.Run([]string{command}, runner.Opts{Shell: true}); err != nil {
				return err
			}
		}
		return nil
	}
}
