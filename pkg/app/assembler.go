// Package app assembles the CLI command tree from a loaded config tree.
package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/domestobot/pkg/config"
	"github.com/arnavsurve/domestobot/pkg/gitrepos"
	"github.com/arnavsurve/domestobot/pkg/runner"
	"github.com/arnavsurve/domestobot/pkg/steps"
)

const dryRunHelp = "Print commands for every step instead of running them"

// InvalidStepError reports a default_subcommands entry with no matching
// registered subcommand. It surfaces at invocation time, not load time.
type InvalidStepError struct {
	Name string
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("%q is not a valid step", e.Name)
}

// Assemble builds the command tree for a config tree: one subcommand per
// resolved step (kebab-cased), one nested sub-application per sub-config,
// and a root callback that runs the configured default subcommands or
// shows help. Every level shares the same Selector, so --dry-run anywhere
// in the tree redirects all command execution.
func Assemble(tree *config.Tree, sel *runner.Selector) *cobra.Command {
	cmd, _ := assemble(tree, sel)
	return cmd
}

// assemble returns the command for one tree level plus its default-run
// callback. The callback doubles as the parent's registered callback for
// this level, matching how invoking a sub-application without a
// subcommand behaves.
func assemble(tree *config.Tree, sel *runner.Selector) (*cobra.Command, func() error) {
	cfg := tree.Config
	root := &cobra.Command{
		Use:           kebabCase(tree.Name),
		Short:         firstLine(cfg.HelpMessage),
		Long:          cfg.HelpMessage,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.Var(&dryRunFlag{sel: sel}, "dry-run", dryRunHelp)
	flags.Lookup("dry-run").NoOptDefVal = "true"

	callbacks := make(map[string]func() error)
	for _, sub := range tree.Subs {
		subCmd, subDefaults := assemble(sub, sel)
		root.AddCommand(subCmd)
		callbacks[sub.Name] = subDefaults
	}

	resolved := steps.Resolve(cfg.Steps, sel)
	if len(cfg.Repos) > 0 {
		resolved = append(resolved, gitrepos.Steps(cfg.Repos, sel)...)
	}
	for _, step := range resolved {
		run := step.Run
		root.AddCommand(&cobra.Command{
			Use:   kebabCase(step.Name),
			Short: firstLine(step.Doc),
			Long:  step.Doc,
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return run()
			},
		})
		callbacks[step.Name] = run
	}

	runDefaults := func() error {
		if len(cfg.DefaultSubcommands) == 0 {
			return root.Help()
		}
		// Names resolve one at a time: earlier defaults run before a
		// later invalid name fails.
		for _, name := range cfg.DefaultSubcommands {
			callback, ok := callbacks[name]
			if !ok {
				return &InvalidStepError{Name: name}
			}
			if err := callback(); err != nil {
				return err
			}
		}
		return nil
	}
	root.RunE = func(*cobra.Command, []string) error {
		return runDefaults()
	}
	return root, runDefaults
}

// dryRunFlag feeds the shared Selector directly from flag parsing, so the
// mode is set before any callback runs. A second --dry-run anywhere on the
// command line hits the Selector's once-only check and becomes a flag
// parse error.
type dryRunFlag struct {
	sel *runner.Selector
}

func (f *dryRunFlag) String() string {
	return strconv.FormatBool(f.sel.Mode() == runner.ModeDryRun)
}

func (f *dryRunFlag) Set(value string) error {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	if on {
		return f.sel.EnableDryRun()
	}
	return nil
}

func (f *dryRunFlag) Type() string { return "bool" }

func kebabCase(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
