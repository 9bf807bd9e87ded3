package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/pipeline"
)

var (
	runModel        string
	runPrompt       string
	runCustomPrompt string
	runExportPath   string
)

var runCmd = &cobra.Command{
	Use:   "run <code-file>",
	Short: "Debloat a single source file",
	Long: `Send one source file to an LLM for bloat removal and apply the result.

Without --export the original file is replaced in place; a backup copy is
always written next to it first (<file>.bak). The run appends one row to the
metrics store either way.

Examples:
  debloat run main.py --model claude-3-7-sonnet
  debloat run main.py -m gpt-4o -p minimal
  debloat run main.py -m gpt-4o --custom-prompt "Remove dead code only."
  debloat run main.py -m gemini-2-0-flash --export slim/main.py`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "LLM model to use (see 'debloat models')")
	runCmd.Flags().StringVarP(&runPrompt, "prompt", "p", "1", "built-in prompt id")
	runCmd.Flags().StringVar(&runCustomPrompt, "custom-prompt", "", "literal prompt text instead of a built-in prompt")
	runCmd.Flags().StringVar(&runExportPath, "export", "", "write the result here instead of replacing the original")
	runCmd.MarkFlagRequired("model") //nolint:errcheck
}

func runRun(cmd *cobra.Command, args []string) error {
	codeFile := args[0]

	if _, err := os.Stat(codeFile); err != nil {
		return fmt.Errorf("code file not found: %s", codeFile)
	}
	if _, ok := client.Spec(runModel); !ok {
		return fmt.Errorf("unknown model %q (run 'debloat models' to list known models)", runModel)
	}

	promptArg := runPrompt
	if runCustomPrompt != "" {
		promptArg = runCustomPrompt
	}

	job := pipeline.NewJob(codeFile, runModel, promptArg, runExportPath)
	outcome := runner.Process(context.Background(), job)
	if outcome.Err != nil {
		return outcome.Err
	}

	theme := newTheme()
	fmt.Println(theme.Success.Render(fmt.Sprintf("Debloated %s: %d -> %d lines (%.1f%% reduction)",
		codeFile, outcome.Write.LinesBefore, outcome.Write.LinesAfter, outcome.Reduction)))
	fmt.Printf("Output:  %s\n", outcome.Write.OutputPath)
	fmt.Printf("Backup:  %s\n", outcome.Write.BackupPath)
	fmt.Println(theme.Hint.Render(fmt.Sprintf("Metrics appended to %s", recorder.Path())))

	return nil
}
