package config

import (
	"errors"
	"fmt"
)

// NotFoundError reports a config file that doesn't exist. The CLI layer
// treats it as recoverable for the root config only.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Config file %s not found", e.Path)
}

// ParseError wraps a TOML syntax error with the offending file's path.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error while parsing config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a config document that parsed but violates the
// structural constraints.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid config file %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CycleError reports a sub_domestobots chain that loops back on itself.
type CycleError struct {
	Path string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("Config file %s is part of a sub_domestobots cycle", e.Path)
}

// IsConfigError reports whether err belongs to the config error taxonomy,
// i.e. whether its message is safe to surface to the user as-is.
func IsConfigError(err error) bool {
	var (
		notFound   *NotFoundError
		parse      *ParseError
		validation *ValidationError
		cycle      *CycleError
	)
	return errors.As(err, &notFound) ||
		errors.As(err, &parse) ||
		errors.As(err, &validation) ||
		errors.As(err, &cycle)
}
