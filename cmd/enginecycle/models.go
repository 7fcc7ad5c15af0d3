package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/engine-cycle/internal/registry"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List all pressure models",
	Long:  `Shows the pressure models that sample, metrics, view and the API accept.`,
	Run:   runModels,
}

func runModels(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	models := registry.List()

	if len(models) == 0 {
		fmt.Fprintln(out, "No models available.")
		return
	}

	fmt.Fprintln(out, "Pressure models:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range models {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range models {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'enginecycle sample --model <id>' to sample a cycle.")
}
