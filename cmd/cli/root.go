// Package cli wires the config tree, runner selection, and logging into
// the executable application.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/arnavsurve/domestobot/internal/logging"
	"github.com/arnavsurve/domestobot/pkg/app"
	"github.com/arnavsurve/domestobot/pkg/config"
	"github.com/arnavsurve/domestobot/pkg/runner"
	"github.com/arnavsurve/domestobot/pkg/steps"
)

const (
	appName = "domestobot"

	// RootConfigEnv selects an alternate root config path.
	RootConfigEnv = "DOMESTOBOT_ROOT_CONFIG"
)

// Main runs the application and returns the process exit code.
func Main() int {
	// .env is loaded before anything reads the environment, so both
	// DOMESTOBOT_ROOT_CONFIG and DOMESTOBOT_LOG can come from it.
	dotenvErr := godotenv.Load()

	logger, closeLog := logging.NewFileLogger()
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
		}
	}()

	runID := uuid.New().String()
	logger = logger.With().Str("run_id", runID).Logger()
	if dotenvErr != nil {
		logger.Debug().Err(dotenvErr).Msg("no .env file loaded, relying on real ENV")
	}

	return run(rootConfigPath(), os.Args[1:], os.Stdout, os.Stderr, logger)
}

// run loads the config tree at configPath and executes the assembled
// application against args, writing help to stdout and warnings and
// errors to stderr. It returns the process exit code.
func run(configPath string, args []string, stdout, stderr io.Writer, logger zerolog.Logger) int {
	tree, err := config.LoadTree(configPath)
	if err != nil {
		var notFound *config.NotFoundError
		switch {
		case errors.As(err, &notFound):
			// A missing root config is fine: fall back to an empty
			// default config so the help surface still works.
			logger.Warn().Str("config", configPath).Msg("root config not found")
			steps.Fwarning(stderr, notFound.Error()+"\n")
			tree = config.EmptyTree(appName)
		case config.IsConfigError(err):
			fmt.Fprintln(stderr, err)
			return 1
		default:
			logger.Error().Err(err).Str("config", configPath).Msg("unhandled error while building application")
			fmt.Fprintf(stderr, "Unhandled error, please report it to the maintainer: %q\n", err)
			return 1
		}
	} else {
		tree.Name = appName
	}

	logger.Info().Str("config", configPath).Msg("starting run")

	root := app.Assemble(tree, runner.NewSelector())
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("run failed")
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Info().Msg("run completed")
	return 0
}

func rootConfigPath() string {
	if path := os.Getenv(RootConfigEnv); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "domestobot", "root.toml")
}
