// evosim simulates a single organism growing on a grid of nutrients and obstacles.
//
// Usage:
//
//	evosim run [file]        - Run a setup file, a preset, or the setup wizard
//	evosim tutorial          - Run the tutorial preset
//	evosim presets           - List built-in presets
//	evosim history           - Show recorded runs
//	evosim menu              - Pick presets interactively
//	evosim serve             - Start SSH server for remote runs
//	evosim trace <dir>       - Summarize a recorded trace
//	evosim config            - Print the effective settings
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default from settings)
//	--config <path>     - Settings file to use instead of the search path
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/evosim/internal/config"
	"github.com/vovakirdan/evosim/internal/core"
	"github.com/vovakirdan/evosim/internal/logging"
	"github.com/vovakirdan/evosim/internal/storage"

	// Import presets to register them
	_ "github.com/vovakirdan/evosim/internal/presets"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagLogLevel   string

	// Set up by the root command before any subcommand runs
	settings       config.Settings
	settingsSource string
	logger         *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "evosim",
	Short: "Evolution Simulator - watch an organism grow in your terminal",
	Long: `Evolution Simulator grows a single entity on a square grid. Each cycle the
entity tries to spread to a neighboring cell, consuming nutrients and bumping
into obstacles, while its growth value and random mutations decide its fate.

Available commands:
  run       - Run a setup file, a preset, or build a setup with the wizard
  tutorial  - Run the tutorial
  presets   - List built-in presets
  history   - Show recorded runs
  menu      - Interactive preset picker
  serve     - Start SSH server for remote runs
  trace     - Summarize a recorded trace
  config    - Print the effective settings

Examples:
  evosim tutorial
  evosim run --preset petri
  evosim run ./setups/my_setup.txt --headless --save result.txt
  evosim run --export my_setup.txt
  evosim serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tutorialCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(configCmd)
}

// initRuntime builds the logger and loads settings for every subcommand.
func initRuntime(_ *cobra.Command, _ []string) error {
	var err error
	logger, err = logging.New(os.Stderr, flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}

	settings, settingsSource, err = config.Load(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	logger.Debug("settings loaded", "source", settingsSource)

	if flagDBPath == "" {
		flagDBPath = settings.Storage.Path
	}
	return nil
}

// openStore opens run history. History is best-effort: on failure the run continues
// without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen to the terminal and applies the seed flag.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
