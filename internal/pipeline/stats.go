package pipeline

import "time"

// RunStats aggregates the outcomes of one batch run. It is mutated only by
// the aggregating goroutine, in outcome-completion order.
type RunStats struct {
	Converted int      // Successful conversions.
	Skipped   int      // Non-image files seen during a directory walk.
	Failed    []string // Display names, in completion order.
	Bigger    []string // Display names with change ratio above 1.

	TotalInputBytes  int64 // Over successful conversions only.
	TotalOutputBytes int64

	Elapsed time.Duration
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs of successful conversions. Positive means the outputs are smaller.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
