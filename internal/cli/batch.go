package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/manifest"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/pipeline"
)

var (
	batchModel     string
	batchPrompt    string
	batchExportDir string
	batchDelay     time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process many files from a CSV manifest",
}

var batchProcessCmd = &cobra.Command{
	Use:   "process <manifest.csv>",
	Short: "Run every job listed in a manifest",
	Long: `Process each row of a CSV manifest in order. A row holds at least a
file_path; empty model and prompt columns fall back to the --model and
--prompt flags. One job's failure never aborts the rest of the batch.

The process exits zero as long as the manifest itself could be read;
individual job failures are reported in the summary instead.

Examples:
  debloat batch process batch_files.csv --model gpt-4o
  debloat batch process batch_files.csv -m claude-3-7-sonnet --export-dir slim/
  debloat batch process batch_files.csv -m gpt-4o --delay 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchProcess,
}

var batchTemplateCmd = &cobra.Command{
	Use:   "template [path]",
	Short: "Create an example manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBatchTemplate,
}

func init() {
	batchProcessCmd.Flags().StringVarP(&batchModel, "model", "m", "", "default model for rows without one")
	batchProcessCmd.Flags().StringVarP(&batchPrompt, "prompt", "p", "1", "default prompt id for rows without one")
	batchProcessCmd.Flags().StringVar(&batchExportDir, "export-dir", "", "write results here instead of replacing originals")
	batchProcessCmd.Flags().DurationVar(&batchDelay, "delay", 2*time.Second, "pause between jobs to respect provider rate limits")

	batchCmd.AddCommand(batchProcessCmd)
	batchCmd.AddCommand(batchTemplateCmd)
}

func runBatchProcess(cmd *cobra.Command, args []string) error {
	entries, err := manifest.Load(args[0])
	if err != nil {
		return err
	}

	if batchModel == "" {
		for i, e := range entries {
			if e.Model == "" {
				return fmt.Errorf("manifest row %d has no model and no --model default was given", i+2)
			}
		}
	}

	if batchExportDir != "" {
		if err := os.MkdirAll(batchExportDir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	theme := newTheme()
	fmt.Printf("Processing %d jobs from %s\n\n", len(entries), args[0])

	opts := pipeline.BatchOptions{
		DefaultModel:  batchModel,
		DefaultPrompt: batchPrompt,
		ExportDir:     batchExportDir,
		Delay:         batchDelay,
	}

	result, err := runner.ProcessBatch(context.Background(), entries, opts, func(o pipeline.Outcome) {
		name := filepath.Base(o.Job.FilePath)
		if o.Succeeded() {
			fmt.Println(theme.Success.Render(fmt.Sprintf("  ok   %-30s %4d -> %4d lines (%.1f%%)",
				name, o.Write.LinesBefore, o.Write.LinesAfter, o.Reduction)))
		} else {
			fmt.Println(theme.Failure.Render(fmt.Sprintf("  fail %-30s %v", name, o.Err)))
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", theme.Header.Render("Batch summary"))
	fmt.Printf("  Jobs processed: %d\n", len(result.Outcomes))
	fmt.Printf("  Succeeded:      %d\n", result.Succeeded)
	fmt.Printf("  Failed:         %d\n", result.Failed)
	fmt.Printf("  Elapsed:        %s\n", runner.Calls().Elapsed().Round(time.Millisecond))

	if snaps := runner.Calls().Snapshot(); len(snaps) > 0 {
		fmt.Printf("\n%s\n", theme.Header.Render("Provider calls"))
		for _, s := range snaps {
			fmt.Printf("  %-24s %3d calls, %2d failed, avg %6.0fms (min %d, max %d)\n",
				s.Model, s.Count, s.Failures, s.AvgTimeMs, s.MinTimeMs, s.MaxTimeMs)
		}
	}

	fmt.Println(theme.Hint.Render(fmt.Sprintf("\nMetrics appended to %s", recorder.Path())))
	return nil
}

func runBatchTemplate(cmd *cobra.Command, args []string) error {
	path := "batch_files.csv"
	if len(args) == 1 {
		path = args[0]
	}
	if err := manifest.WriteTemplate(path); err != nil {
		return err
	}
	fmt.Printf("Manifest template created at %s\n", path)
	return nil
}
