package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evosim/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long: `Print the settings in use as YAML, along with where they were loaded from.

Settings are read from --config, then ~/.evosim/config.yaml, then
./configs/evosim.yaml, falling back to the built-in defaults. Redirect the
output to a file to start your own.

Examples:
  evosim config
  evosim config > ~/.evosim/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	data, err := config.Encode(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", settingsSource)
	os.Stdout.Write(data)
}
