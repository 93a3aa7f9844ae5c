package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/setups"
)

const tutorialID = "tutorial"

var tutorialCmd = &cobra.Command{
	Use:   "tutorial",
	Short: "Run the tutorial simulation",
	Long: `Explain the simulation and run the tutorial setup.

Tutorial runs are never saved to a file or to the run history.

Examples:
  evosim tutorial
  evosim tutorial --headless --seed 1`,
	Args: cobra.NoArgs,
	Run:  runTutorial,
}

func init() {
	tutorialCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without animation and print the final grid")
}

func runTutorial(_ *cobra.Command, _ []string) {
	setup, err := registry.Create(tutorialID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tutorial: %v\n", err)
		os.Exit(1)
	}

	printTutorialIntro(setup)

	res, err := simulate(setup, setup.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	saveResult(setup, res)
}

func printTutorialIntro(setup setups.Setup) {
	fmt.Println(setup.Title())
	fmt.Println()
	if setup.Description != "" {
		fmt.Println(setup.Description)
		fmt.Println()
	}
}
