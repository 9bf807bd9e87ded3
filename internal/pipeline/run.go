package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/extract"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/fileio"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/metrics"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/prompt"
)

// Invoker abstracts the provider client.
type Invoker interface {
	Invoke(ctx context.Context, model, promptText, source string) (string, error)
}

// Runner drives jobs through the debloat workflow: read, request, extract,
// write, record.
type Runner struct {
	provider Invoker
	recorder *metrics.Recorder
	calls    *metrics.Collector
	timeout  time.Duration
}

// NewRunner creates a runner. The timeout bounds each provider call.
func NewRunner(provider Invoker, recorder *metrics.Recorder, timeout time.Duration) *Runner {
	return &Runner{
		provider: provider,
		recorder: recorder,
		calls:    metrics.NewCollector(),
		timeout:  timeout,
	}
}

// Calls returns the in-run provider-call statistics.
func (r *Runner) Calls() *metrics.Collector {
	return r.calls
}

// Outcome is the terminal result of one job.
type Outcome struct {
	Job       Job
	Err       error
	Write     fileio.WriteResult
	Reduction float64
	Duration  time.Duration
	Recorded  bool
}

// Succeeded reports whether the job completed the full workflow.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Process runs one job end to end. Failures after the source file has been
// read still append a metrics row tagged failed; a job whose source cannot
// be read contributes no row at all. The original file is never modified
// unless its backup has been written first.
func (r *Runner) Process(ctx context.Context, job Job) Outcome {
	start := time.Now()
	out := Outcome{Job: job}

	slog.Info("starting job", "job_id", job.ID, "file", job.FilePath, "model", job.Model)

	source, err := os.ReadFile(job.FilePath)
	if err != nil {
		out.Err = fmt.Errorf("read source: %w", err)
		out.Duration = time.Since(start)
		slog.Error("job failed before read completed", "job_id", job.ID, "error", err)
		return out
	}
	linesBefore := fileio.CountLines(string(source))
	slog.Info("read source", "job_id", job.ID, "lines", linesBefore)

	p, err := prompt.Resolve(job.Prompt)
	if err != nil {
		return r.fail(out, start, linesBefore, 0, fmt.Errorf("resolve prompt: %w", err))
	}

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	callStart := time.Now()
	raw, err := r.provider.Invoke(cctx, job.Model, p.Text, string(source))
	r.calls.RecordCall(job.Model, time.Since(callStart), err != nil)
	if err != nil {
		return r.fail(out, start, linesBefore, 0, fmt.Errorf("invoke %s: %w", job.Model, err))
	}

	candidate, err := extract.Extract(raw)
	if err != nil {
		return r.fail(out, start, linesBefore, 0, fmt.Errorf("extract candidate: %w", err))
	}

	res, err := fileio.Apply(job.FilePath, candidate, job.ExportPath)
	if err != nil {
		return r.fail(out, start, linesBefore, fileio.CountLines(candidate), fmt.Errorf("apply candidate: %w", err))
	}

	out.Write = res
	out.Reduction = metrics.Reduction(res.LinesBefore, res.LinesAfter)
	out.Duration = time.Since(start)

	if candidate == string(source) {
		slog.Warn("model made no changes", "job_id", job.ID, "file", job.FilePath)
	} else if res.LinesAfter == res.LinesBefore {
		slog.Warn("model changed code without reducing line count", "job_id", job.ID, "file", job.FilePath)
	}

	if err := r.record(job, metrics.StatusSuccess, res.LinesBefore, res.LinesAfter); err != nil {
		out.Err = err
		return out
	}
	out.Recorded = true

	slog.Info("job complete",
		"job_id", job.ID,
		"file", job.FilePath,
		"lines_before", res.LinesBefore,
		"lines_after", res.LinesAfter,
		"reduction_percent", out.Reduction,
		"output", res.OutputPath,
		"backup", res.BackupPath,
	)
	return out
}

// fail finalizes a job that got past reading its source: the failure is
// logged and a metrics row tagged failed is still appended.
func (r *Runner) fail(out Outcome, start time.Time, linesBefore, linesAfter int, err error) Outcome {
	out.Err = err
	out.Duration = time.Since(start)
	slog.Error("job failed", "job_id", out.Job.ID, "file", out.Job.FilePath, "error", err)

	if recErr := r.record(out.Job, metrics.StatusFailed, linesBefore, linesAfter); recErr == nil {
		out.Recorded = true
	} else {
		slog.Error("failed to record metrics for failed job", "job_id", out.Job.ID, "error", recErr)
	}
	return out
}

func (r *Runner) record(job Job, status string, linesBefore, linesAfter int) error {
	promptID := job.Prompt
	if p, err := prompt.Resolve(job.Prompt); err == nil {
		promptID = p.ID
	}

	reduction := 0.0
	if status == metrics.StatusSuccess {
		reduction = metrics.Reduction(linesBefore, linesAfter)
	}

	rec := metrics.Record{
		Timestamp:        time.Now(),
		FileName:         job.FilePath,
		Model:            job.Model,
		PromptID:         promptID,
		LinesBefore:      linesBefore,
		LinesAfter:       linesAfter,
		ReductionPercent: reduction,
		Status:           status,
	}
	if err := r.recorder.Record(rec); err != nil {
		return fmt.Errorf("record metrics: %w", err)
	}
	return nil
}
