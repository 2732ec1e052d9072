package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/domestobot/pkg/config"
)

func writeConfig(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadSimpleFixture(t *testing.T) {
	cfg, err := config.Load("test_fixtures/simple.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"test_step"}, cfg.DefaultSubcommands)
	require.Len(t, cfg.Steps, 2)
	assert.Equal(t, "test_step", cfg.Steps[0].Name)
	assert.Equal(t, "Echoing", cfg.Steps[0].Title)
	assert.Equal(t, []string{"echo", "echoed value"}, cfg.Steps[0].Command)
	require.Len(t, cfg.Steps[1].Envs, 2)
	assert.Equal(t, "Linux", cfg.Steps[1].Envs[0].OS)
	assert.Equal(t, "uname -a", cfg.Steps[1].Envs[0].ShellCommand)
	assert.Equal(t, config.DefaultHelp, cfg.HelpMessage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	var notFound *config.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Error(), "nope.toml")
	assert.True(t, config.IsConfigError(err))
}

func TestLoadBrokenFixture(t *testing.T) {
	_, err := config.Load("test_fixtures/broken.toml")
	var parseErr *config.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "test_fixtures/broken.toml")
	assert.True(t, config.IsConfigError(err))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := config.Load("test_fixtures/unknown_key.toml")
	var validationErr *config.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "help_text")
}

func TestLoadReportsInvalidStep(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
[[steps]]
name = "bad"
doc = "doc"
command = ["echo"]
shell_command = "echo"
`)
	_, err := config.Load(path)
	var validationErr *config.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), `step "bad"`)
}

func TestLoadKeepsConfiguredHelpMessage(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `help_message = "My helper."`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "My helper.", cfg.HelpMessage)
}

func TestLoadResolvesSubConfigsRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "child.toml", "")
	path := writeConfig(t, dir, "root.toml", `sub_domestobots = ["child.toml"]`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.SubDomestobots, 1)
	assert.Equal(t, filepath.Join(dir, "child.toml"), cfg.SubDomestobots[0])
}

func TestLoadRejectsMissingSubConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "root.toml", `sub_domestobots = ["gone.toml"]`)

	_, err := config.Load(path)
	var validationErr *config.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), `"gone.toml" does not exist`)
}

func TestLoadExpandsRepoPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "root.toml", `repos = ["~/src/project", "/abs/path"]`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "src", "project"), cfg.Repos[0])
	assert.Equal(t, "/abs/path", cfg.Repos[1])
}

func TestLoadTreeBuildsNestedTree(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "child.toml", `
[[steps]]
name = "inner"
doc = "Inner step."
command = ["true"]
`)
	path := writeConfig(t, dir, "root.toml", `sub_domestobots = ["child.toml"]`)

	tree, err := config.LoadTree(path)
	require.NoError(t, err)
	assert.Equal(t, "root", tree.Name)
	require.Len(t, tree.Subs, 1)
	assert.Equal(t, "child", tree.Subs[0].Name)
	require.Len(t, tree.Subs[0].Config.Steps, 1)
	assert.Equal(t, "inner", tree.Subs[0].Config.Steps[0].Name)
}

func TestLoadTreeDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	// a -> b -> a; the files must exist before either can be loaded.
	writeConfig(t, dir, "a.toml", "")
	writeConfig(t, dir, "b.toml", `sub_domestobots = ["a.toml"]`)
	pathA := writeConfig(t, dir, "a.toml", `sub_domestobots = ["b.toml"]`)

	_, err := config.LoadTree(pathA)
	var cycleErr *config.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.True(t, config.IsConfigError(err))
}

func TestLoadTreeAllowsSharedSubConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "shared.toml", "")
	writeConfig(t, dir, "left.toml", `sub_domestobots = ["shared.toml"]`)
	writeConfig(t, dir, "right.toml", `sub_domestobots = ["shared.toml"]`)
	path := writeConfig(t, dir, "root.toml", `sub_domestobots = ["left.toml", "right.toml"]`)

	tree, err := config.LoadTree(path)
	require.NoError(t, err)
	assert.Len(t, tree.Subs, 2)
}

func TestEmptyTree(t *testing.T) {
	tree := config.EmptyTree("domestobot")
	assert.Equal(t, "domestobot", tree.Name)
	assert.Empty(t, tree.Config.Steps)
	assert.Equal(t, config.DefaultHelp, tree.Config.HelpMessage)
}
