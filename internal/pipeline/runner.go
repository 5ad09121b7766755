// Package pipeline orchestrates image discovery, parallel encoder
// invocation, and the sequential aggregation that produces the CSV report
// and console summary.
package pipeline

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/backmassage/webpbatch/internal/config"
	"github.com/backmassage/webpbatch/internal/display"
	"github.com/backmassage/webpbatch/internal/logging"
	"github.com/backmassage/webpbatch/internal/naming"
	"github.com/backmassage/webpbatch/internal/report"
	"github.com/backmassage/webpbatch/internal/webp"
)

// Run is the top-level batch entry point: discover → dispatch across a
// bounded worker pool → aggregate sequentially → report. inputIsDir tells
// the pipeline how the input root was resolved by the caller. Individual
// conversion failures are recorded, never retried, and never abort the run.
func Run(ctx context.Context, cfg *config.Config, inputIsDir bool, log *logging.Logger) RunStats {
	var stats RunStats
	start := time.Now()

	rep, err := report.Create(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot create report: %v", err)
		return stats
	}

	root := naming.EffectiveRoot(cfg.InputPath, inputIsDir)
	discovery := Discover(cfg.InputPath, inputIsDir)

	// Workers pull paths and push outcomes; they share nothing mutable
	// besides the read-only config. Pool size tracks the host's parallel
	// execution units and is deliberately not configurable.
	results := make(chan webp.Outcome)
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range discovery.Files {
				results <- convertOne(ctx, cfg, root, path)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Aggregation happens strictly here, in completion order: the report
	// writer and stats need no locking.
	for outcome := range results {
		aggregate(&stats, rep, log, &outcome)
	}
	stats.Skipped = discovery.Skipped()
	stats.Elapsed = time.Since(start)

	if err := rep.Close(); err != nil {
		log.Error("Report not fully written: %v", err)
	}

	logWarnings(log, &stats)
	logSummary(log, &stats, rep.Path())
	return stats
}

// convertOne handles one file on a worker: map output path → invoke
// encoder → parse captured output. Every error path still yields an
// Outcome so the aggregator sees exactly one result per discovered file.
func convertOne(ctx context.Context, cfg *config.Config, root, path string) webp.Outcome {
	outPath, err := naming.OutputPath(root, path, cfg.OutputDir)
	if err != nil {
		o := webp.Parse(root, path, "")
		o.Err = err
		return o
	}

	raw, err := webp.Execute(ctx, webp.Build(cfg, path, outPath))
	o := webp.Parse(root, path, raw)
	if err != nil {
		o.Err = err
	}
	return o
}

// aggregate records one outcome: CSV row, progress line, classification.
func aggregate(stats *RunStats, rep *report.Writer, log *logging.Logger, o *webp.Outcome) {
	if err := rep.Add(o); err != nil {
		log.Error("%v", err)
	}

	if o.Err != nil {
		log.Debug("%s: %v", o.DisplayName, o.Err)
	}

	if !o.Converted {
		log.Info("%s | %5d KB |", o.DisplayName, o.OriginalKB)
		stats.Failed = append(stats.Failed, o.DisplayName)
		return
	}

	log.Info("%s | %5d KB | %5d KB | %4.0f%%",
		o.DisplayName, o.OriginalKB, o.WebpKB, o.ChangeRatio*100)

	stats.Converted++
	stats.TotalInputBytes += o.OriginalBytes
	stats.TotalOutputBytes += o.WebpBytes
	if o.Bigger() {
		stats.Bigger = append(stats.Bigger, o.DisplayName)
	}
}

func logWarnings(log *logging.Logger, stats *RunStats) {
	if len(stats.Bigger) == 0 && len(stats.Failed) == 0 {
		return
	}
	log.Warn("==================== WARNING ====================")
	for _, name := range stats.Bigger {
		log.Warn("Converted %s is BIGGER", name)
	}
	for _, name := range stats.Failed {
		log.Error("Converting %s FAILED", name)
	}
}

func logSummary(log *logging.Logger, stats *RunStats, reportPath string) {
	log.Info("==================== Result ====================")
	log.Success("Converted: %d, Cost: %.2fs", stats.Converted, stats.Elapsed.Seconds())

	if stats.Skipped > 0 {
		log.Info("Skipped %d non-image files", stats.Skipped)
	}

	if stats.Converted > 0 {
		saved := stats.SpaceSaved()
		if saved >= 0 {
			log.Info("Space saved: %s (input %s -> output %s)",
				display.FormatBytes(saved),
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes))
		} else {
			log.Warn("Space saved: -%s (overall output is larger)",
				display.FormatBytes(-saved))
		}
	}

	log.Info("View all details in %s", reportPath)
}
