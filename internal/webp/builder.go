package webp

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/webpbatch/internal/config"
)

// Build constructs the complete encoder argument slice for one file.
// GIF inputs go to gif2webp, everything else to cwebp. The quality value
// is always passed. cwebp is lossy unless -lossless is appended; gif2webp
// is lossless unless -lossy is appended, so each encoder needs an explicit
// flag only for its non-default mode. The "--" marker terminates option
// parsing so input paths starting with "-" cannot be read as flags.
func Build(cfg *config.Config, inputFile, outputFile string) []string {
	encoder := "cwebp"
	if strings.EqualFold(filepath.Ext(inputFile), ".gif") {
		encoder = "gif2webp"
	}

	args := make([]string, 0, 8)
	args = append(args, encoder, "-q", strconv.Itoa(cfg.Quality))

	if encoder == "cwebp" && cfg.Lossless {
		args = append(args, "-lossless")
	}
	if encoder == "gif2webp" && !cfg.Lossless {
		args = append(args, "-lossy")
	}

	return append(args, "-o", outputFile, "--", inputFile)
}
