// Package config holds runtime configuration: defaults, environment and
// .env overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings for one batch run. It is populated by
// [DefaultConfig], then [ApplyEnv], then [ParseFlags], and is read-only
// afterwards: the pipeline shares one Config pointer across all workers.
type Config struct {
	// Paths.
	InputPath string // Positional arg: input file or directory.
	OutputDir string // --out: output directory root (required).

	// Encoder settings, forwarded to cwebp/gif2webp.
	Quality  int  // Default: 80. Recognized range 0-100, passed through as-is.
	Lossless bool // Default: false.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config matching the defaults of the CLI surface.
// Used as the base before env and flag overrides are applied.
func DefaultConfig() Config {
	return Config{
		Quality:   80,
		Lossless:  false,
		Verbose:   false,
		ColorMode: ColorAuto,
		CheckOnly: false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and, when not in CheckOnly mode, requires
// both the input path and the output directory to be set.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" {
		return errors.New("need an input file or directory")
	}
	if c.OutputDir == "" {
		return errors.New("need an output directory (-o/--out)")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or
// equal to) the resolved input directory. Converted .webp files are
// themselves discoverable inputs, so a nested output root would reconvert
// its own output on the next run. Both arguments must be absolute,
// symlink-resolved paths; call only when the input is a directory.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
