// Package check provides encoder diagnostics (--check mode) and the
// pre-pipeline dependency validation for cwebp and gif2webp.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required encoder is missing.
var (
	ErrCwebpNotFound    = errors.New("cwebp not found on PATH (install libwebp)")
	ErrGif2webpNotFound = errors.New("gif2webp not found on PATH (install libwebp)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps is the pre-pipeline validation: both libwebp encoders must be
// resolvable on PATH before any file is touched. Returns a sentinel error
// naming the first missing tool.
func CheckDeps() error {
	if _, err := exec.LookPath("cwebp"); err != nil {
		return ErrCwebpNotFound
	}
	if _, err := exec.LookPath("gif2webp"); err != nil {
		return ErrGif2webpNotFound
	}
	return nil
}

// RunCheck runs the interactive --check flow: prints availability and
// version of cwebp and gif2webp. Returns false if either encoder is
// missing.
func RunCheck(log Logger) bool {
	log.Info("=== Encoder Check ===")

	ok := checkEncoder(log, "cwebp")
	ok = checkEncoder(log, "gif2webp") && ok
	return ok
}

// checkEncoder verifies one encoder is on PATH and logs its version string.
func checkEncoder(log Logger, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	cmd := exec.Command(name, "-version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
	return true
}
