package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/evosim/internal/sim"
)

// YAMLSetup represents the YAML structure of a setup file.
type YAMLSetup struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Grid        YAMLGrid          `yaml:"grid"`
	Traits      YAMLTraits        `yaml:"traits"`
	Radiation   YAMLRadiation     `yaml:"radiation"`
	Start       [][]int           `yaml:"start,flow"`
	Nutrients   [][]int           `yaml:"nutrients,flow"`
	Obstacles   [][]int           `yaml:"obstacles,flow"`
	Cycles      int               `yaml:"cycles"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLGrid represents grid dimensions. Cols defaults to Rows.
type YAMLGrid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols,omitempty"`
}

// YAMLTraits holds the categorical trait indices.
type YAMLTraits struct {
	Genotype    int `yaml:"genotype"`
	Phenotype   int `yaml:"phenotype"`
	Environment int `yaml:"environment"`
}

// YAMLRadiation holds the three radiation levels.
type YAMLRadiation struct {
	Xray     float64 `yaml:"xray"`
	Gamma    float64 `yaml:"gamma"`
	Particle float64 `yaml:"particle"`
}

// ParseYAML parses a YAML setup file. Coordinates are [row, col] pairs.
func ParseYAML(data []byte) (Setup, error) {
	var ys YAMLSetup
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Setup{}, &ParseError{Field: "yaml", Err: err}
	}

	cols := ys.Grid.Cols
	if cols == 0 {
		cols = ys.Grid.Rows
	}
	cfg := sim.Config{
		Rows:        ys.Grid.Rows,
		Cols:        cols,
		Genotype:    ys.Traits.Genotype,
		Phenotype:   ys.Traits.Phenotype,
		Environment: ys.Traits.Environment,
		Xray:        ys.Radiation.Xray,
		Gamma:       ys.Radiation.Gamma,
		Particle:    ys.Radiation.Particle,
		Cycles:      ys.Cycles,
	}

	sets := []struct {
		name string
		in   [][]int
		dst  *[]sim.Coord
	}{
		{"start", ys.Start, &cfg.Start},
		{"nutrients", ys.Nutrients, &cfg.Nutrients},
		{"obstacles", ys.Obstacles, &cfg.Obstacles},
	}
	for _, set := range sets {
		coords, err := pairsToCoords(set.in)
		if err != nil {
			return Setup{}, &ParseError{Field: set.name, Err: err}
		}
		*set.dst = coords
	}

	return Setup{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: ys.Description,
		Config:      cfg,
		Metadata:    ys.Metadata,
	}, nil
}

func pairsToCoords(pairs [][]int) ([]sim.Coord, error) {
	out := make([]sim.Coord, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("entry %d: expected [row, col], got %v", i, p)
		}
		out = append(out, sim.C(p[0], p[1]))
	}
	return out, nil
}

// FormatYAML renders a setup in the YAML format.
func FormatYAML(s Setup) ([]byte, error) {
	c := s.Config
	ys := YAMLSetup{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Grid:        YAMLGrid{Rows: c.Rows, Cols: c.Cols},
		Traits:      YAMLTraits{Genotype: c.Genotype, Phenotype: c.Phenotype, Environment: c.Environment},
		Radiation:   YAMLRadiation{Xray: c.Xray, Gamma: c.Gamma, Particle: c.Particle},
		Start:       coordsToPairs(c.Start),
		Nutrients:   coordsToPairs(c.Nutrients),
		Obstacles:   coordsToPairs(c.Obstacles),
		Cycles:      c.Cycles,
		Metadata:    s.Metadata,
	}
	data, err := yaml.Marshal(ys)
	if err != nil {
		return nil, fmt.Errorf("formats: yaml marshal: %w", err)
	}
	return data, nil
}

func coordsToPairs(coords []sim.Coord) [][]int {
	out := make([][]int, len(coords))
	for i, c := range coords {
		out[i] = []int{c.Row, c.Col}
	}
	return out
}
