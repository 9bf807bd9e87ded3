// Package main provides the entry point for the debloat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sankalp112kashyap/SoftwareCode-Debloat-LLMs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
