package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evosim/internal/platform/tui"
	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/setups"
	"github.com/vovakirdan/evosim/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the simulator with a preset picker menu",
	Long: `Start the simulator in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a setup.
After a run ends, you return to the menu to start another.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select setup
  Tab/H        - Run history
  Q            - Quit

Examples:
  evosim menu
  evosim menu --seed 42
  evosim menu --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, histErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			break
		}

		setup, preset, ok := menuSetup(menuResult)
		if !ok {
			continue
		}

		// Only an explicit --seed repeats across runs
		runCfg := cfg
		runCfg.Seed = flagSeed

		outcome, err := tui.Run(setup, tui.RunOptions{
			Preset:   preset,
			Settings: settings,
			Store:    store,
		}, runCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if outcome.SaveErr != nil {
			logger.Warn("run not added to history", "error", outcome.SaveErr)
		}
		logger.Debug("run finished", "preset", preset, "seed", outcome.Seed,
			"cycles", outcome.Result.CyclesRun, "reason", outcome.Result.Reason.String())
	}
}

// menuSetup builds the setup for a menu choice. Custom entries go through the wizard.
func menuSetup(choice tui.MenuResult) (setups.Setup, string, bool) {
	if choice.Custom {
		cfg, err := tui.RunWizard()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return setups.Setup{}, "", false
		}
		if cfg == nil {
			return setups.Setup{}, "", false
		}
		return setups.Setup{ID: storage.CustomPreset, Name: "Custom setup", Config: *cfg}, storage.CustomPreset, true
	}

	if choice.SetupID == "" {
		return setups.Setup{}, "", false
	}
	setup, err := registry.Create(choice.SetupID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating preset: %v\n", err)
		return setups.Setup{}, "", false
	}
	return setup, setup.ID, true
}
