package sim

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		want   error
	}{
		{"valid", func(c *Config) {}, "", nil},
		{"grid too small", func(c *Config) { c.Rows, c.Cols = 9, 9 }, "rows", ErrGridSize},
		{"grid too large", func(c *Config) { c.Rows, c.Cols = 101, 101 }, "rows", ErrGridSize},
		{"not square", func(c *Config) { c.Cols = 12 }, "cols", ErrNotSquare},
		{"genotype zero", func(c *Config) { c.Genotype = 0 }, "genotype", ErrTrait},
		{"phenotype six", func(c *Config) { c.Phenotype = 6 }, "phenotype", ErrTrait},
		{"environment negative", func(c *Config) { c.Environment = -1 }, "environment", ErrTrait},
		{"xray above one", func(c *Config) { c.Xray = 1.5 }, "xray", ErrRadiation},
		{"gamma negative", func(c *Config) { c.Gamma = -0.1 }, "gamma", ErrRadiation},
		{"particle nan", func(c *Config) { c.Particle = math.NaN() }, "particle", ErrRadiation},
		{"radiation bounds inclusive", func(c *Config) { c.Xray, c.Gamma = 0, 1 }, "", nil},
		{"cycles negative", func(c *Config) { c.Cycles = -1 }, "cycles", ErrCyclesRange},
		{"cycles too many", func(c *Config) { c.Cycles = MaxCycles + 1 }, "cycles", ErrCyclesRange},
		{"zero cycles allowed", func(c *Config) { c.Cycles = 0 }, "", nil},
		{"too many nutrients", func(c *Config) { c.Nutrients = fillRow(26) }, "nutrients", ErrTooManyCells},
		{"nutrients at limit", func(c *Config) { c.Nutrients = fillRow(25) }, "", nil},
		{"too many obstacles", func(c *Config) { c.Obstacles = fillRow(26) }, "obstacles", ErrTooManyCells},
		{"empty start", func(c *Config) { c.Start = nil }, "start", ErrNoStartCells},
		{"start off grid", func(c *Config) { c.Start = []Coord{C(0, 10)} }, "start", ErrOutOfBounds},
		{"nutrient on start", func(c *Config) { c.Nutrients = []Coord{C(5, 5)} }, "nutrients", ErrOverlap},
		{"duplicate obstacle", func(c *Config) { c.Obstacles = []Coord{C(1, 1), C(1, 1)} }, "obstacles", ErrDuplicate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()

			if tc.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, expected %v", err, tc.want)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Errorf("Validate() field = %v, expected %q", err, tc.field)
			}
		})
	}
}

// fillRow returns n distinct coordinates away from the base start cell.
func fillRow(n int) []Coord {
	coords := make([]Coord, 0, n)
	for r := 0; r < 10 && len(coords) < n; r++ {
		if r == 5 {
			continue
		}
		for c := 0; c < 10 && len(coords) < n; c++ {
			coords = append(coords, C(r, c))
		}
	}
	return coords
}

func TestMaxFillCells(t *testing.T) {
	tests := []struct {
		rows, expected int
	}{
		{10, 25},
		{11, 30}, // floor(121 / 4)
		{100, 2500},
	}
	for _, tc := range tests {
		cfg := Config{Rows: tc.rows, Cols: tc.rows}
		if got := cfg.MaxFillCells(); got != tc.expected {
			t.Errorf("MaxFillCells(%d) = %d, expected %d", tc.rows, got, tc.expected)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := baseConfig()
	cfg.Nutrients = []Coord{C(1, 1)}
	clone := cfg.Clone()
	clone.Start[0] = C(0, 0)
	clone.Nutrients[0] = C(2, 2)

	if cfg.Start[0] != C(5, 5) || cfg.Nutrients[0] != C(1, 1) {
		t.Errorf("Clone() shares slices with the original: %+v", cfg)
	}
}

func TestCoordNeighbors(t *testing.T) {
	tests := []struct {
		at       Coord
		expected int
	}{
		{C(5, 5), 8},
		{C(0, 0), 3},
		{C(0, 5), 5},
		{C(9, 9), 3},
	}
	for _, tc := range tests {
		if got := len(tc.at.Neighbors(10, 10)); got != tc.expected {
			t.Errorf("%v.Neighbors() = %d cells, expected %d", tc.at, got, tc.expected)
		}
	}
	if s := C(3, 4).String(); s != "(3, 4)" {
		t.Errorf("String() = %q, expected \"(3, 4)\"", s)
	}
}
