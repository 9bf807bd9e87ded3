package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/prompt"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and whether their credentials are set",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the built-in prompts",
	Args:  cobra.NoArgs,
	RunE:  runPrompts,
}

func runModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPROVIDER\tMODEL ID\tCREDENTIALS")
	for _, alias := range client.Models() {
		spec, _ := client.Spec(alias)
		creds := "missing"
		if client.Available(alias) {
			creds = "ok"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", alias, spec.Provider, spec.ModelID, creds)
	}
	return w.Flush()
}

func runPrompts(cmd *cobra.Command, args []string) error {
	for _, p := range prompt.Builtin() {
		first, _, _ := strings.Cut(strings.TrimSpace(p.Text), "\n")
		fmt.Printf("%s: %s\n", p.ID, first)
	}
	fmt.Println("\nAny other value passed to --prompt is used verbatim as prompt text.")
	return nil
}
