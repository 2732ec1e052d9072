// Package gitrepos provides the built-in repo maintenance steps enabled by
// the top-level repos config key.
package gitrepos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavsurve/domestobot/pkg/runner"
	"github.com/arnavsurve/domestobot/pkg/steps"
)

// Non-empty `git log --branches --not --remotes --oneline` output always
// contains this marker, even with escape sequences around it.
const unpushedMarker = "->"

// NotARepositoryError reports a configured repo path that git rejects with
// status 128.
type NotARepositoryError struct {
	Dir string
}

func (e *NotARepositoryError) Error() string {
	return "Not a git repository: " + e.Dir
}

// Steps returns the built-in steps over the configured repos, in the same
// resolved form as config-defined steps.
func Steps(repos []string, r runner.Runner) []steps.Resolved {
	return []steps.Resolved{
		{
			Name: "fetch_repos",
			Doc:  "Fetch new changes for configured git repos.",
			Run: func() error {
				steps.Title("Fetching repos")
				return FetchRepos(r, repos)
			},
		},
		{
			Name: "check_repos_clean",
			Doc:  "Check if configured git repos have unpublished work.",
			Run: func() error {
				steps.Title("Checking git repos")
				return CheckReposClean(r, repos)
			},
		},
	}
}

// FetchRepos runs git fetch in every repo, stopping at the first failure.
func FetchRepos(r runner.Runner, repos []string) error {
	for _, repo := range repos {
		if _, err := r.Run([]string{"git", "-C", repo, "fetch"}, runner.Opts{}); err != nil {
			return err
		}
	}
	return nil
}

// CheckReposClean warns about every repo with unsaved changes or unpushed
// commits. Dirty repos are reported, not treated as a failure.
func CheckReposClean(r runner.Runner, repos []string) error {
	if len(repos) == 0 {
		steps.Info("No repos to check")
		return nil
	}
	var dirty []string
	for _, repo := range repos {
		isDirty, err := IsTreeDirty(r, repo)
		if err != nil {
			return err
		}
		if isDirty {
			dirty = append(dirty, repo)
		}
	}
	if len(dirty) == 0 {
		steps.Info("Everything's clean!")
		return nil
	}
	for _, repo := range dirty {
		steps.Warning(fmt.Sprintf("Repository in %s was not clean", repo))
	}
	return nil
}

// IsTreeDirty reports whether dir has unsaved changes or unpushed commits.
func IsTreeDirty(r runner.Runner, dir string) (bool, error) {
	unsaved, err := hasUnsavedChanges(r, dir)
	if err != nil {
		return false, translateGitError(err, dir)
	}
	if unsaved {
		return true, nil
	}
	unpushed, err := hasUnpushedCommits(r, dir)
	if err != nil {
		return false, translateGitError(err, dir)
	}
	return unpushed, nil
}

func hasUnsavedChanges(r runner.Runner, dir string) (bool, error) {
	result, err := r.Run(
		[]string{"git", "-C", dir, "status", "--ignore-submodules", "--porcelain"},
		runner.Opts{CaptureOutput: true},
	)
	if err != nil {
		return false, err
	}
	return len(result.Stdout) > 0, nil
}

func hasUnpushedCommits(r runner.Runner, dir string) (bool, error) {
	result, err := r.Run(
		[]string{"git", "-C", dir, "log", "--branches", "--not", "--remotes", "--oneline"},
		runner.Opts{CaptureOutput: true},
	)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(result.Stdout), unpushedMarker), nil
}

func translateGitError(err error, dir string) error {
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && exitErr.Code == 128 {
		return &NotARepositoryError{Dir: dir}
	}
	return err
}
