// Package naming maps discovered input files to mirrored output paths and
// to the relative display names used in logs and the CSV report.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EffectiveRoot returns the directory that relative paths are computed
// against: the input root itself when it is a directory, otherwise its
// parent. The parent fallback keeps single-file inputs displaying as just
// the file's own name and writing directly under the output root.
func EffectiveRoot(inputPath string, isDir bool) string {
	if isDir {
		return inputPath
	}
	return filepath.Dir(inputPath)
}

// OutputPath builds the mirrored output path for inputFile:
//
//	<outputDir>/<inputFile relative dir under root>/<stem>.webp
//
// and ensures the directory chain exists. MkdirAll is idempotent, so two
// workers creating the same directory concurrently cannot fail each other.
//
// Distinct inputs can map to the same output (a.jpg and a.png side by
// side); the later-completing conversion overwrites the earlier. That is
// an accepted limitation, not a guarded case.
func OutputPath(root, inputFile, outputDir string) (string, error) {
	rel, err := filepath.Rel(root, inputFile)
	if err != nil {
		return "", fmt.Errorf("resolve %s relative to %s: %w", inputFile, root, err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	out := filepath.Join(outputDir, filepath.Dir(rel), stem+".webp")

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return out, nil
}

// DisplayName returns inputFile relative to root, falling back to the
// basename if the relative path cannot be computed.
func DisplayName(root, inputFile string) string {
	rel, err := filepath.Rel(root, inputFile)
	if err != nil {
		return filepath.Base(inputFile)
	}
	return rel
}
