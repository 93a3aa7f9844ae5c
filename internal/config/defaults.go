package config

import (
	_ "embed"
)

//go:embed defaults/evosim.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings used when no YAML can be read.
func DefaultSettings() Settings {
	return Settings{
		Display: DisplayConfig{
			Empty:    CellStyle{Symbol: "-", Color: "gray"},
			Occupied: CellStyle{Symbol: "E", Color: "bright-green"},
			Nutrient: CellStyle{Symbol: "N", Color: "yellow"},
			Obstacle: CellStyle{Symbol: "O", Color: "red"},
			Legend:   true,
		},
		Pacing: PacingConfig{
			InitialLevel: 0.5,
			MinDelayMS:   5,
			MaxDelayMS:   400,
			Steps:        10,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 1000,
			},
		},
		Storage: StorageConfig{
			Path: "~/.evosim/evosim.db",
		},
		Trace: TraceConfig{
			Enabled: false,
			Dir:     "./traces",
		},
	}
}
