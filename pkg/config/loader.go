package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

// Load reads and parses one config file. Sub-config paths are resolved
// relative to the file's directory and must exist; repo paths get ~
// expanded. The returned Config is not mutated afterward.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, &ValidationError{
			Path: path,
			Err:  fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")),
		}
	}

	merr := new(multierror.Error)
	if err := cfg.Validate(); err != nil {
		merr = multierror.Append(merr, err)
	}

	dir := filepath.Dir(path)
	for i, sub := range cfg.SubDomestobots {
		resolved := sub
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(dir, resolved)
		}
		if _, err := os.Stat(resolved); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("sub_domestobots: %q does not exist", sub))
			continue
		}
		cfg.SubDomestobots[i] = resolved
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, &ValidationError{Path: path, Err: err}
	}

	if cfg.HelpMessage == "" {
		cfg.HelpMessage = DefaultHelp
	}
	for i, repo := range cfg.Repos {
		cfg.Repos[i] = expandUser(repo)
	}
	return &cfg, nil
}

// Tree is a config together with its recursively loaded sub-configs. Name
// is the source file's base name without extension and becomes the
// subcommand group name when the tree is attached under a parent.
type Tree struct {
	Name   string
	Config *Config
	Subs   []*Tree
}

// LoadTree loads path and every config it references, depth first. A
// sub_domestobots chain that revisits a file already on the descent stack
// fails with a CycleError; the same file reachable through two different
// parents is fine.
func LoadTree(path string) (*Tree, error) {
	return loadTree(path, make(map[string]bool))
}

func loadTree(path string, visiting map[string]bool) (*Tree, error) {
	canon := canonicalPath(path)
	if visiting[canon] {
		return nil, &CycleError{Path: path}
	}
	visiting[canon] = true
	defer delete(visiting, canon)

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	tree := &Tree{Name: stem(path), Config: cfg}
	for _, subPath := range cfg.SubDomestobots {
		sub, err := loadTree(subPath, visiting)
		if err != nil {
			return nil, err
		}
		tree.Subs = append(tree.Subs, sub)
	}
	return tree, nil
}

// EmptyTree returns a tree around an empty default config, used when the
// root config file is missing.
func EmptyTree(name string) *Tree {
	return &Tree{Name: name, Config: &Config{HelpMessage: DefaultHelp}}
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
