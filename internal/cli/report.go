package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/metrics"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the metrics store per model",
	Long: `Read the metrics store and print aggregate results per model: job counts,
mean and best line reduction, and total lines removed. Only successful jobs
contribute to the reduction figures.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	records, err := recorder.Load()
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("No metrics store at %s yet. Run 'debloat run' or 'debloat batch process' first.\n", recorder.Path())
		return nil
	}
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("Metrics store %s is empty.\n", recorder.Path())
		return nil
	}

	theme := newTheme()
	fmt.Println(theme.Header.Render(fmt.Sprintf("Results from %s (%d jobs)", recorder.Path(), len(records))))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tJOBS\tOK\tMEAN RED.\tBEST RED.\tLINES REMOVED")
	for _, s := range metrics.Summarize(records) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%.1f%%\t%d\n",
			s.Model, s.Jobs, s.Succeeded, s.MeanReduction, s.BestReduction, s.LinesRemoved)
	}
	return w.Flush()
}
