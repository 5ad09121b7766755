package webp

import (
	"math"
	"os"
	"regexp"
	"strconv"

	"github.com/backmassage/webpbatch/internal/naming"
)

// Both encoders report the written size as e.g. "Output: 12345 bytes Y-U-V"
// (cwebp) or "output file size: 12345 bytes" (gif2webp). The first digit
// run between a case-insensitive "output" and a following "bytes" is the
// byte count.
var reOutputSize = regexp.MustCompile(`(?i)output.+?(\d+)\s+bytes`)

// Parse turns one encoder invocation's captured text into an Outcome.
// root is the effective input root used for the display name. An outcome
// with Converted false means failure: no size pattern in raw, an
// unreadable input, or an original that rounds to 0 KB (the change ratio
// would divide by zero).
func Parse(root, inputFile, raw string) Outcome {
	o := Outcome{DisplayName: naming.DisplayName(root, inputFile)}

	fi, err := os.Stat(inputFile)
	if err != nil {
		return o
	}
	o.OriginalBytes = fi.Size()
	o.OriginalKB = roundKB(fi.Size())
	// Rounding half-up yields 0 KB for files under 512 bytes; clamp
	// non-empty originals to 1 KB so only truly empty inputs hit the
	// zero-size failure guard below.
	if o.OriginalBytes > 0 && o.OriginalKB == 0 {
		o.OriginalKB = 1
	}

	m := reOutputSize.FindStringSubmatch(raw)
	if m == nil || o.OriginalKB == 0 {
		return o
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return o
	}

	o.WebpBytes = n
	o.WebpKB = roundKB(n)
	o.ChangeRatio = round2(float64(o.WebpKB-o.OriginalKB) / float64(o.OriginalKB))
	o.Converted = true
	return o
}

// roundKB converts bytes to KB with round-half-up semantics.
func roundKB(n int64) int64 {
	return (n + 512) / 1024
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
