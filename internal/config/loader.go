package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/evosim/internal/core"
)

// Sources reported by Load.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load reads application settings.
// Search order: customPath -> ~/.evosim/config.yaml -> ./configs/evosim.yaml -> embedded default.
// Keys missing from a file keep their default values. The second return value names
// the source that was used.
func Load(customPath string) (Settings, string, error) {
	// Try custom path first; an explicit path must be readable.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSettings(), "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultSettings(), "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if path := userConfigPath("config.yaml"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, path, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", "evosim.yaml")
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, local, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

// parse decodes YAML over the built-in defaults and normalizes the result.
func parse(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs values that would break pacing.
func (s *Settings) normalize() {
	p := &s.Pacing
	p.InitialLevel = core.ClampF(p.InitialLevel, 0, 1)
	if p.MinDelayMS < 0 {
		p.MinDelayMS = 0
	}
	if p.MaxDelayMS < p.MinDelayMS {
		p.MaxDelayMS = p.MinDelayMS
	}
	if p.Steps < 1 {
		p.Steps = 1
	}
}

// Encode renders settings as YAML.
func Encode(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".evosim", filename)
}
