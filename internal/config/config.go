// Package config provides YAML-based application settings and the pacing model
// that turns a speed level into a delay between rendered cycles.
package config

import (
	"github.com/vovakirdan/evosim/internal/core"
	"github.com/vovakirdan/evosim/internal/sim"
)

// Settings is the complete application configuration.
type Settings struct {
	Display DisplayConfig `yaml:"display"`
	Pacing  PacingConfig  `yaml:"pacing"`
	Storage StorageConfig `yaml:"storage"`
	Trace   TraceConfig   `yaml:"trace"`
}

// DisplayConfig controls how grid cells are drawn in the terminal.
type DisplayConfig struct {
	Empty    CellStyle `yaml:"empty"`
	Occupied CellStyle `yaml:"occupied"`
	Nutrient CellStyle `yaml:"nutrient"`
	Obstacle CellStyle `yaml:"obstacle"`
	Legend   bool      `yaml:"legend"` // show the symbol legend under the grid
}

// CellStyle is the symbol and color of one cell kind.
type CellStyle struct {
	Symbol string `yaml:"symbol"`
	Color  string `yaml:"color"` // a core.ParseColor name
}

// PacingConfig defines the animation speed of interactive runs.
type PacingConfig struct {
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = slowest, 1.0 = fastest
	MinDelayMS   int               `yaml:"min_delay_ms"`  // delay at level 1.0
	MaxDelayMS   int               `yaml:"max_delay_ms"`  // delay at level 0.0
	Steps        int               `yaml:"steps"`         // number of +/- presses between the extremes
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how the speed ramps up over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "cycles" or "none"
	MaxAt int    `yaml:"max_at"` // cycle at which the fastest speed is reached
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// TraceConfig controls per-cycle telemetry output.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Style returns the configured screen cell for a cell kind. Empty or unknown
// settings fall back to the built-in symbol and the default color.
func (d DisplayConfig) Style(kind sim.CellKind) core.Cell {
	var cs CellStyle
	switch kind {
	case sim.CellOccupied:
		cs = d.Occupied
	case sim.CellNutrient:
		cs = d.Nutrient
	case sim.CellObstacle:
		cs = d.Obstacle
	default:
		cs = d.Empty
	}

	cell := core.Cell{Rune: kind.Symbol()}
	if r := []rune(cs.Symbol); len(r) > 0 {
		cell.Rune = r[0]
	}
	if c, ok := core.ParseColor(cs.Color); ok {
		cell.Color = c
	}
	return cell
}
