// Package cli provides the command-line interface for debloat.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/config"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/llm"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/metrics"
	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	metricsPath string

	// Global config and components, set up in PersistentPreRunE
	cfg        config.Config
	client     *llm.Client
	recorder   *metrics.Recorder
	runner     *pipeline.Runner
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "debloat",
	Short: "Remove software bloat from source files using LLMs",
	Long: `Debloat sends source files to an LLM with a debloating prompt, extracts the
rewritten file from the response, and applies it safely: the original is
backed up before any write, and every run appends a before/after metrics row
to a CSV store.

Models from several providers are supported; credentials come from the
environment (or a .env file in the working directory).`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		config.LoadDotenv()
		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, cleanup := config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)
		logCleanup = cleanup

		registry, err := llm.LoadRegistry(cfg.ModelsFile)
		if err != nil {
			return fmt.Errorf("load model registry: %w", err)
		}
		client = llm.NewClient(cfg, registry)

		if metricsPath == "" {
			metricsPath = cfg.MetricsFile
		}
		recorder = metrics.NewRecorder(metricsPath)
		runner = pipeline.NewRunner(client, recorder, cfg.RequestTimeout)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&metricsPath, "metrics", "", "metrics store path (default from DEBLOAT_METRICS_FILE)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(promptsCmd)
}
