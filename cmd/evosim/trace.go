package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/evosim/internal/telemetry"
)

var traceCmd = &cobra.Command{
	Use:   "trace <dir|file>",
	Short: "Summarize a recorded trace",
	Long: `Read a trace.csv written with --trace-dir and print its growth statistics
and outcome counts as YAML.

Examples:
  evosim trace ./traces/petri-20260101-120000
  evosim trace ./traces/petri-20260101-120000/trace.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func runTrace(_ *cobra.Command, args []string) {
	path := args[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, telemetry.TraceFile)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	records, err := telemetry.ReadTrace(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("trace read", "file", path, "cycles", len(records))

	data, err := yaml.Marshal(telemetry.Summarize(records))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding summary: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
