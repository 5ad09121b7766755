package webp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrToolInvocation marks an encoder that could not be located or launched
// at all, as opposed to one that ran and exited non-zero.
var ErrToolInvocation = errors.New("encoder could not be launched")

// Execute runs the encoder command and returns its combined stdout+stderr
// text. A non-zero exit is not an error here: the encoder ran, and whether
// it produced output is decided by parsing the captured text. Only a
// launch failure (binary missing, not executable) returns an error,
// wrapped around [ErrToolInvocation].
func Execute(ctx context.Context, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), nil
		}
		return string(out), fmt.Errorf("%w: %s: %v", ErrToolInvocation, argv[0], err)
	}
	return string(out), nil
}
