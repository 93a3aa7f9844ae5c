package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evosim/internal/platform/tui"
	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/setups"
	"github.com/vovakirdan/evosim/internal/sim"
	"github.com/vovakirdan/evosim/internal/storage"
	"github.com/vovakirdan/evosim/internal/telemetry"
)

var (
	flagPreset   string
	flagHeadless bool
	flagSave     string
	flagTraceDir string
	flagExport   string
	flagSetupDir string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a simulation",
	Long: `Run a simulation from a setup file, a built-in preset, or a setup built
interactively with the wizard.

Setup files use the plain text layout (.txt) or YAML (.yaml, .yml).

Controls:
  Space/P     - Pause / resume
  N/Right     - Step one cycle while paused
  +/-         - Faster / slower
  F           - Finish the run instantly
  Enter/Esc   - Leave after the run ends
  Q           - Quit

Examples:
  evosim run                                  # Build a setup with the wizard
  evosim run --export my_setup.txt            # ...and keep it for later
  evosim run --preset maze --seed 42
  evosim run --dir ./setups --preset dish     # Setup "dish" from a directory
  evosim run ./setups/dish.yaml --headless --save result.txt
  evosim run --preset petri --trace-dir ./traces`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "Built-in preset to run (see 'evosim presets')")
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without animation and print the final grid")
	runCmd.Flags().StringVar(&flagSave, "save", "", "Write the finished run to this file")
	runCmd.Flags().StringVar(&flagTraceDir, "trace-dir", "", "Write a per-cycle trace under this directory")
	runCmd.Flags().StringVar(&flagExport, "export", "", "Write the wizard's setup to this file before running")
	runCmd.Flags().StringVar(&flagSetupDir, "dir", "", "Look up --preset in this directory of setup files")
}

func runRun(_ *cobra.Command, args []string) {
	setup, preset, ok := resolveSetup(args)
	if !ok {
		return
	}

	if setup.IsTutorial() {
		printTutorialIntro(setup)
	}

	res, err := simulate(setup, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	saveResult(setup, res)
}

// resolveSetup picks the setup from a file argument, the --preset flag or the wizard.
// It returns the history label for the run and false when there is nothing to run.
func resolveSetup(args []string) (setups.Setup, string, bool) {
	switch {
	case len(args) == 1:
		path := args[0]
		setup, err := setups.NewLoader(filepath.Dir(path)).LoadFile(path)
		if err != nil {
			logger.Error("no configuration loaded", "file", path, "error", err)
			os.Exit(1)
		}
		if err := setup.Config.Validate(); err != nil {
			logger.Warn("setup is outside the usual limits", "file", path, "error", err)
		}
		logger.Debug("setup loaded", "file", path, "id", setup.ID)
		return setup, storage.CustomPreset, true

	case flagPreset != "" && flagSetupDir != "":
		setup, err := setups.NewLoader(flagSetupDir).LoadByID(flagPreset)
		if err != nil {
			logger.Error("no configuration loaded", "dir", flagSetupDir, "id", flagPreset, "error", err)
			os.Exit(1)
		}
		if err := setup.Config.Validate(); err != nil {
			logger.Warn("setup is outside the usual limits", "file", setup.FilePath, "error", err)
		}
		return setup, storage.CustomPreset, true

	case flagPreset != "":
		if !registry.Exists(flagPreset) {
			fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", flagPreset)
			fmt.Fprintln(os.Stderr, "Run 'evosim presets' to see available presets.")
			os.Exit(1)
		}
		setup, err := registry.Create(flagPreset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating preset: %v\n", err)
			os.Exit(1)
		}
		return setup, setup.ID, true

	default:
		cfg, err := tui.RunWizard()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cfg == nil {
			fmt.Println("Setup cancelled.")
			return setups.Setup{}, "", false
		}
		setup := setups.Setup{
			ID:     storage.CustomPreset,
			Name:   "Custom setup",
			Config: *cfg,
		}
		if flagExport != "" {
			if err := setups.Save(flagExport, setup); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Setup written to %s\n", flagExport)
		}
		return setup, storage.CustomPreset, true
	}
}

// simulate runs the setup animated or headless and returns the final result.
func simulate(setup setups.Setup, preset string) (sim.RunResult, error) {
	recorder, err := telemetry.NewRecorder(traceDir(preset))
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		recorder = nil
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if flagHeadless {
		return runHeadless(setup, preset, store, recorder)
	}

	outcome, err := tui.Run(setup, tui.RunOptions{
		Preset:   preset,
		Settings: settings,
		Store:    store,
		Recorder: recorder,
	}, runtimeConfig())
	if err != nil {
		recorder.Close()
		return outcome.Result, err
	}
	if outcome.SaveErr != nil {
		logger.Warn("run not added to history", "error", outcome.SaveErr)
	}
	if outcome.TraceErr != nil {
		logger.Warn("trace incomplete", "error", outcome.TraceErr)
	} else if recorder != nil {
		logger.Info("trace written", "dir", recorder.Dir())
	}
	if outcome.Result.Reason != sim.ReasonNone {
		printResult(outcome.Result)
	}
	return outcome.Result, nil
}

// runHeadless steps the engine to completion and prints the final state.
func runHeadless(setup setups.Setup, preset string, store *storage.Store, recorder *telemetry.Recorder) (sim.RunResult, error) {
	cfg := runtimeConfig()
	seed := cfg.ResolveSeed()

	engine, err := sim.Start(setup.Config, rand.New(rand.NewSource(seed)))
	if err != nil {
		recorder.Close()
		return sim.RunResult{}, err
	}
	logger.Debug("run started", "preset", preset, "seed", seed, "cycles", setup.Config.Cycles)

	for engine.Status() == sim.StatusRunning {
		rep, err := engine.Step()
		if err != nil {
			recorder.Close()
			return engine.Result(), err
		}
		if err := recorder.Record(rep); err != nil {
			logger.Warn("trace incomplete", "error", err)
			recorder.Close()
			recorder = nil
		}
	}
	res := engine.Result()

	if _, err := recorder.Finish(preset, seed, res); err != nil {
		logger.Warn("trace incomplete", "error", err)
	} else if recorder != nil {
		logger.Info("trace written", "dir", recorder.Dir())
	}

	if store != nil && !setup.IsTutorial() {
		id, err := store.SaveRun(storage.NewRunRecord(preset, seed, setup.Config, res))
		if err != nil {
			logger.Warn("run not added to history", "error", err)
		} else {
			logger.Debug("run saved", "id", id)
		}
	}

	fmt.Println("Final grid: ")
	fmt.Println(sim.FormatGrid(sim.Render(res.Occupied, res.Nutrients, res.Obstacles, setup.Config.Rows, setup.Config.Cols)))
	printResult(res)
	fmt.Printf("Seed: %d\n", seed)
	return res, nil
}

// printResult prints the end-of-run counters.
func printResult(res sim.RunResult) {
	fmt.Printf("Final Cycle count: %d\n", res.CyclesRun)
	fmt.Printf("Final Mutation count: %d\n", res.MutationCount)
	fmt.Printf("Original growth value: %s\n", round4(res.InitialGrowth))
	fmt.Printf("Final growth value: %s\n", round4(res.FinalGrowth))
	fmt.Println(res.Reason.Describe())
}

// saveResult writes the finished run when --save was given.
func saveResult(setup setups.Setup, res sim.RunResult) {
	if setup.IsTutorial() {
		fmt.Println("Tutorial simulation complete. No file will be saved.")
		return
	}
	if flagSave == "" {
		return
	}
	if res.Reason == sim.ReasonNone {
		logger.Warn("run did not finish, nothing saved", "file", flagSave)
		return
	}
	if err := setups.SaveResult(flagSave, res); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Result saved to %s\n", flagSave)
}

// traceDir returns a fresh directory for this run's trace, or "" when tracing is off.
func traceDir(preset string) string {
	base := flagTraceDir
	if base == "" && settings.Trace.Enabled {
		base = settings.Trace.Dir
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, fmt.Sprintf("%s-%s", preset, time.Now().Format("20060102-150405")))
}

func round4(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
