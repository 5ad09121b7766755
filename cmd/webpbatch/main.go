// Command webpbatch is the CLI entrypoint for the batch image-to-WebP
// converter.
//
// It parses flags, validates configuration and paths, and either runs
// encoder diagnostics (--check) or the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/webpbatch/internal/check"
	"github.com/backmassage/webpbatch/internal/config"
	"github.com/backmassage/webpbatch/internal/display"
	"github.com/backmassage/webpbatch/internal/logging"
	"github.com/backmassage/webpbatch/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	config.ApplyEnv(&cfg)
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "webpbatch: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "webpbatch: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "webpbatch: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner(log)

	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return 1
		}
		return 0
	}

	fi, err := os.Stat(cfg.InputPath)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputPath)
		return 1
	}

	if err := ensureReady(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// A directory input must not contain the output root: .webp outputs
	// are themselves discoverable inputs.
	if fi.IsDir() {
		inputAbs, err := absPath(cfg.InputPath)
		if err != nil {
			log.Error("Cannot resolve input path: %s", cfg.InputPath)
			return 1
		}
		outputAbs, err := absPath(cfg.OutputDir)
		if err != nil {
			log.Error("Cannot resolve output path: %s", cfg.OutputDir)
			return 1
		}
		if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
			log.Error("%v", err)
			log.Error("Choose an output path outside: %s", cfg.InputPath)
			return 1
		}
	}

	log.Info("=== webpbatch v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.InputPath)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.Lossless {
		log.Info("Mode: lossless")
	} else {
		log.Info("Mode: lossy, quality %d", cfg.Quality)
	}
	log.Info("")

	// Per-file failures are reported in the summary, not via the exit
	// code; only startup preconditions terminate the run abnormally.
	pipeline.Run(context.Background(), &cfg, fi.IsDir(), log)
	return 0
}

// ensureReady verifies both encoders are resolvable and only then creates
// the output directory: a missing dependency must abort the run before any
// file or directory is touched.
func ensureReady(cfg *config.Config) error {
	if err := check.CheckDeps(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", cfg.OutputDir, err)
	}
	return nil
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
