package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/storage"
)

var (
	flagHistoryPreset string
	flagHistoryLimit  int
	flagHistoryClear  bool
	flagHistoryRun    int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display finished runs from the history database.

Without --preset the most recent runs are listed. With --preset the runs of
that preset are ranked by final size. Runs of custom and file setups are
recorded under the "custom" preset.

Examples:
  evosim history
  evosim history --preset petri --limit 5
  evosim history --preset custom --clear
  evosim history --run 12`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryPreset, "preset", "", "Show the best runs of one preset")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the selected runs instead of listing them")
	historyCmd.Flags().Int64Var(&flagHistoryRun, "run", 0, "Show the details of one run")
}

func runHistory(_ *cobra.Command, _ []string) {
	preset := flagHistoryPreset
	if preset != "" && preset != storage.CustomPreset && !registry.Exists(preset) {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", preset)
		fmt.Fprintln(os.Stderr, "Run 'evosim presets' to see available presets.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryRun > 0 {
		printRun(store, flagHistoryRun)
		return
	}

	if flagHistoryClear {
		if err := store.ClearRuns(preset); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		if preset == "" {
			fmt.Println("Run history cleared.")
		} else {
			fmt.Printf("Runs of %q cleared.\n", preset)
		}
		return
	}

	var runs []storage.RunRecord
	if preset == "" {
		fmt.Println("Recent runs")
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		fmt.Printf("Best runs - %s\n", preset)
		runs, err = store.TopRuns(preset, flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'evosim run --preset <id>'.")
		return
	}

	fmt.Printf("  %-5s  %-10s  %-6s  %-6s  %-8s  %-12s  %s\n", "Run", "Preset", "Cells", "Cycles", "Growth", "Reason", "Date")
	fmt.Printf("  %-5s  %-10s  %-6s  %-6s  %-8s  %-12s  %s\n", "---", "------", "-----", "------", "------", "------", "----")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-10s  %-6d  %-6d  %-8.4f  %-12s  %s\n",
			r.ID, r.Preset, r.Occupied, r.CyclesRun, r.FinalGrowth, r.Reason.String(),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if preset != "" {
		if stats, err := store.PresetStats(preset); err == nil && stats != nil {
			fmt.Println()
			fmt.Printf("%d runs, best %d cells, average %.1f cells over %.1f cycles\n",
				stats.Runs, stats.BestOccupied, stats.AvgOccupied, stats.AvgCycles)
		}
	}
}

func printRun(store *storage.Store, id int64) {
	r, err := store.RunByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run #%d\n", id)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run #%d - %s\n", r.ID, r.Preset)
	fmt.Println()
	fmt.Printf("  Date             %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  Seed             %d\n", r.Seed)
	fmt.Printf("  Grid             %d*%d\n", r.Rows, r.Rows)
	fmt.Printf("  Cycles           %d of %d\n", r.CyclesRun, r.CyclesRequested)
	fmt.Printf("  Entity cells     %d\n", r.Occupied)
	fmt.Printf("  Nutrients left   %d\n", r.NutrientsLeft)
	fmt.Printf("  Mutations        %d\n", r.Mutations)
	fmt.Printf("  Growth           %s -> %s\n", round4(r.InitialGrowth), round4(r.FinalGrowth))
	fmt.Printf("  Outcome          %s\n", r.Reason.Describe())
}
