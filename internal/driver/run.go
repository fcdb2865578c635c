// Package driver wires discovery, scanning, aggregation and classification
// into one run.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"provable/internal/claims"
	"provable/internal/config"
	"provable/internal/diag"
	"provable/internal/observ"
	"provable/internal/walk"
)

// Options tunes a run. Zero values are usable.
type Options struct {
	// Jobs overrides the configured number of workers when > 0.
	Jobs     int
	Logger   *slog.Logger
	Progress ProgressSink
	Timer    *observ.Timer
}

// Result is the outcome of a completed run.
type Result struct {
	Files   []string
	Results *claims.ResultsMap
	Bag     *diag.Bag
}

// OK reports whether no error-level finding was produced.
func (r *Result) OK() bool {
	return !r.Bag.HasErrors()
}

// Discover lists the files the configuration selects.
func Discover(cfg config.Config, opts Options) ([]string, error) {
	logger := loggerOf(opts)
	idx := opts.Timer.Begin("walk")
	files, err := walk.Files(cfg.Directory(), cfg.IncludePatterns(), cfg.ExcludePatterns())
	opts.Timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	logger.Debug("files of interest", "count", len(files), "files", files)
	return files, nil
}

// Run discovers files and checks them.
func Run(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	files, err := Discover(cfg, opts)
	if err != nil {
		return nil, err
	}
	return Check(ctx, cfg, files, opts)
}

// Check scans the given files, aggregates the occurrences and classifies
// every tag id.
func Check(ctx context.Context, cfg config.Config, files []string, opts Options) (*Result, error) {
	logger := loggerOf(opts)
	jobs := cfg.Jobs()
	if opts.Jobs > 0 {
		jobs = opts.Jobs
	}

	idx := opts.Timer.Begin("scan")
	batches, err := ScanFiles(ctx, files, jobs, opts.Progress)
	opts.Timer.End(idx, fmt.Sprintf("jobs=%d", jobs))
	if err != nil {
		return nil, fmt.Errorf("scan aborted: %w", err)
	}

	idx = opts.Timer.Begin("aggregate")
	results := claims.Collect(batches)
	bag := diag.Check(results, diag.CheckOptions{WarningsAsErrors: cfg.WarningsAsErrors()})
	opts.Timer.End(idx, fmt.Sprintf("%d ids", results.Len()))

	logger.Info("scan finished",
		"files", len(files),
		"ids", results.Len(),
		"errors", len(bag.TagsWith(diag.SevError)),
		"warnings", len(bag.TagsWith(diag.SevWarning)),
	)
	return &Result{Files: files, Results: results, Bag: bag}, nil
}

func loggerOf(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.New(slog.DiscardHandler)
}
