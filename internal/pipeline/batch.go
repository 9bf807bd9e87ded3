package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/manifest"
)

// BatchOptions configure a batch run. Manifest rows with empty model or
// prompt columns fall back to the defaults here.
type BatchOptions struct {
	DefaultModel  string
	DefaultPrompt string

	// ExportDir, when set, writes each candidate to ExportDir/<basename>
	// instead of replacing the original; explicit export_path columns win.
	ExportDir string

	// Delay between jobs, to stay under provider rate limits. The delay is
	// skipped after the final job.
	Delay time.Duration
}

// BatchResult is the ordered sequence of per-job outcomes.
type BatchResult struct {
	Outcomes  []Outcome
	Succeeded int
	Failed    int
}

// ProcessBatch runs manifest entries in order. One job's failure never aborts
// the remaining jobs; every entry yields exactly one outcome. onOutcome, when
// non-nil, is called after each job for progress reporting. The returned
// error is non-nil only when the batch is cancelled mid-run.
func (r *Runner) ProcessBatch(ctx context.Context, entries []manifest.Entry, opts BatchOptions, onOutcome func(Outcome)) (BatchResult, error) {
	var result BatchResult

	slog.Info("starting batch", "jobs", len(entries), "default_model", opts.DefaultModel)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			slog.Warn("batch cancelled", "completed", i, "remaining", len(entries)-i)
			return result, fmt.Errorf("batch cancelled after %d of %d jobs: %w", i, len(entries), err)
		}

		job := r.jobFromEntry(entry, opts)
		outcome := r.Process(ctx, job)

		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Succeeded() {
			result.Succeeded++
		} else {
			result.Failed++
		}
		if onOutcome != nil {
			onOutcome(outcome)
		}

		if opts.Delay > 0 && i < len(entries)-1 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
			}
		}
	}

	slog.Info("batch complete", "jobs", len(entries), "succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}

func (r *Runner) jobFromEntry(entry manifest.Entry, opts BatchOptions) Job {
	model := entry.Model
	if model == "" {
		model = opts.DefaultModel
	}
	promptID := entry.Prompt
	if promptID == "" {
		promptID = opts.DefaultPrompt
	}
	exportPath := entry.ExportPath
	if exportPath == "" && opts.ExportDir != "" {
		exportPath = filepath.Join(opts.ExportDir, filepath.Base(entry.FilePath))
	}
	return NewJob(entry.FilePath, model, promptID, exportPath)
}
