package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme holds the color scheme for console output.
type Theme struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Header  lipgloss.Style
	Hint    lipgloss.Style
}

// newTheme returns styled output for terminals and plain output otherwise.
func newTheme() Theme {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return Theme{
			Success: lipgloss.NewStyle(),
			Failure: lipgloss.NewStyle(),
			Header:  lipgloss.NewStyle(),
			Hint:    lipgloss.NewStyle(),
		}
	}
	return Theme{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true),
		Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true),
	}
}
