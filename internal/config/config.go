// Package config holds the per-invocation run configuration for ntime.
//
// A RunConfig is assembled once from the parsed command line, validated,
// and then passed by value to the timer and the report formatter. Nothing
// in ntime reads configuration from files or the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// OutputFormat selects how a timing result is rendered.
type OutputFormat string

const (
	// FormatText is the human readable result line.
	FormatText OutputFormat = "text"
	// FormatNumeric prints the elapsed nanoseconds and nothing else.
	FormatNumeric OutputFormat = "numeric"
	// FormatYAML prints a structured YAML record of the run.
	FormatYAML OutputFormat = "yaml"
)

// ErrNoProgram is returned by Validate when no target program was given.
var ErrNoProgram = errors.New("no program specified")

// RunConfig represents the options of a single ntime invocation
type RunConfig struct {
	// Colorize wraps the human result line in ANSI colour sequences
	Colorize bool

	// SuppressChildOutput sends the child's stdout and stderr to the null device
	SuppressChildOutput bool

	// NumericOnly prints only the elapsed nanoseconds; overrides Format and Colorize
	NumericOnly bool

	// Format is the requested output format (text or yaml)
	Format OutputFormat

	// OutputPath is the file the report is written to ("" = stdout)
	OutputPath string

	// Append appends the report to OutputPath instead of replacing it
	Append bool

	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string

	// Program is the executable to time, resolved through PATH
	Program string

	// Args is the argument vector handed to the child; Args[0] is the program name
	Args []string
}

// DefaultConfig returns a RunConfig with the defaults of a bare invocation
func DefaultConfig() RunConfig {
	return RunConfig{
		Colorize: true,
		Format:   FormatText,
		LogLevel: "warn",
	}
}

// ParseFormat converts a --format value into an OutputFormat.
// Only text and yaml may be requested by name; numeric output is selected with -d.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q, must be one of: text, yaml", s)
	}
}

// WithTarget returns a copy of c that runs program with the given argv.
// The argv slice is copied so later changes by the caller are not observed.
func (c RunConfig) WithTarget(program string, argv []string) RunConfig {
	c.Program = program
	c.Args = append([]string(nil), argv...)
	return c
}

// EffectiveFormat resolves flag precedence: numeric-only beats any other format
func (c RunConfig) EffectiveFormat() OutputFormat {
	if c.NumericOnly {
		return FormatNumeric
	}
	if c.Format == "" {
		return FormatText
	}
	return c.Format
}

// UseColor reports whether colour escapes should be emitted for the result
func (c RunConfig) UseColor() bool {
	return c.Colorize && c.EffectiveFormat() == FormatText
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c RunConfig) Validate() error {
	if c.Program == "" {
		return ErrNoProgram
	}

	switch c.Format {
	case "", FormatText, FormatYAML:
	default:
		return fmt.Errorf("invalid format %q, must be one of: text, yaml", c.Format)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Append && c.OutputPath == "" {
		return fmt.Errorf("--append requires --output")
	}

	return nil
}
