// Package webp is the boundary to the external libwebp encoders. It builds
// encoder command lines (Build), runs them as subprocesses capturing their
// combined output (Execute), and parses that output into a per-file
// Outcome (Parse). The encoders' self-reported output size is the sole
// success signal; exit codes are not inspected separately.
package webp

// Outcome is the structured result of converting one input file.
//
// WebpKB, WebpBytes and ChangeRatio are meaningful only when Converted is
// true; Converted false is the failure case (no parseable size in the
// encoder output, or a zero-KB original).
type Outcome struct {
	DisplayName string // Input path relative to the effective input root.

	OriginalBytes int64
	OriginalKB    int64 // Rounded half-up from OriginalBytes.

	Converted   bool
	WebpBytes   int64
	WebpKB      int64   // Rounded half-up from WebpBytes.
	ChangeRatio float64 // (WebpKB - OriginalKB) / OriginalKB, 2 decimals.

	Err error // Set when the encoder could not be launched at all.
}

// Bigger reports whether the converted file grew to more than double the
// original (change ratio above 1).
func (o *Outcome) Bigger() bool {
	return o.Converted && o.ChangeRatio > 1
}
