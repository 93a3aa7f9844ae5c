package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/setups"
)

var flagPresetsDir string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List all built-in presets",
	Long: `Shows a list of all setups registered with the simulator.

With --dir, lists the setup files found in that directory instead.`,
	Run: runPresets,
}

func init() {
	presetsCmd.Flags().StringVar(&flagPresetsDir, "dir", "", "List setup files in this directory")
}

func runPresets(_ *cobra.Command, _ []string) {
	if flagPresetsDir != "" {
		listSetupDir(flagPresetsDir)
		return
	}

	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range presets {
		title := p.Title
		if p.Tutorial {
			title += " (tutorial)"
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, title)
	}

	fmt.Println()
	fmt.Println("Run 'evosim run --preset <id>' to start a preset.")
}

func listSetupDir(dir string) {
	all, err := setups.NewLoader(dir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Printf("No setup files in %s.\n", dir)
		return
	}

	fmt.Printf("Setups in %s:\n", dir)
	fmt.Println()

	maxIDLen := 2
	for _, s := range all {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "ID", "Grid", "File")
	fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, "--", "----", "----")
	for _, s := range all {
		grid := fmt.Sprintf("%d*%d", s.Config.Rows, s.Config.Cols)
		fmt.Printf("  %-*s  %-9s  %s\n", maxIDLen, s.ID, grid, s.FilePath)
	}

	fmt.Println()
	fmt.Printf("Run 'evosim run --dir %s --preset <id>' to start one.\n", dir)
}
