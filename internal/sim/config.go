// Package sim implements the growth simulation: configuration, the value model that
// turns categorical traits into growth and mutation probabilities, and the per-cycle
// engine. It is UI-agnostic and deterministic for a given random source.
package sim

import (
	"errors"
	"fmt"
	"math"
)

// Grid and budget limits accepted by Validate.
const (
	MinGridSize  = 10
	MaxGridSize  = 100
	MinTrait     = 1
	MaxTrait     = 5
	MaxCycles    = 10000
	FillFraction = 0.25 // max share of the grid for nutrients and for obstacles
)

var (
	ErrGridSize     = errors.New("grid size out of range")
	ErrNotSquare    = errors.New("grid must be square")
	ErrTrait        = errors.New("trait index out of range")
	ErrRadiation    = errors.New("radiation level out of range")
	ErrNoStartCells = errors.New("start set is empty")
	ErrOutOfBounds  = errors.New("coordinate out of bounds")
	ErrOverlap      = errors.New("coordinate sets overlap")
	ErrDuplicate    = errors.New("duplicate coordinate")
	ErrTooManyCells = errors.New("too many cells")
	ErrCyclesRange  = errors.New("cycle count out of range")
)

// ValidationError names the field that failed a configuration check.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sim: invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// Config is the immutable input of a run.
type Config struct {
	Rows        int
	Cols        int
	Genotype    int
	Phenotype   int
	Environment int
	Xray        float64
	Gamma       float64
	Particle    float64
	Start       []Coord
	Nutrients   []Coord
	Obstacles   []Coord
	Cycles      int
}

// Clone returns a deep copy so that a running engine never shares slices with its caller.
func (c Config) Clone() Config {
	c.Start = cloneCoords(c.Start)
	c.Nutrients = cloneCoords(c.Nutrients)
	c.Obstacles = cloneCoords(c.Obstacles)
	return c
}

// MaxFillCells returns the largest nutrient or obstacle count allowed for the grid.
func (c Config) MaxFillCells() int {
	return int(math.Floor(float64(c.Rows*c.Rows) * FillFraction))
}

// Validate checks every constraint an interactively collected configuration must meet.
// Setup files are only parsed best-effort; the engine itself re-checks the structural
// subset it depends on (see checkLayout).
func (c Config) Validate() error {
	if c.Rows < MinGridSize || c.Rows > MaxGridSize {
		return invalid("rows", ErrGridSize)
	}
	if c.Cols != c.Rows {
		return invalid("cols", ErrNotSquare)
	}
	traits := []struct {
		name  string
		value int
	}{
		{"genotype", c.Genotype},
		{"phenotype", c.Phenotype},
		{"environment", c.Environment},
	}
	for _, tr := range traits {
		if tr.value < MinTrait || tr.value > MaxTrait {
			return invalid(tr.name, ErrTrait)
		}
	}
	levels := []struct {
		name  string
		value float64
	}{
		{"xray", c.Xray},
		{"gamma", c.Gamma},
		{"particle", c.Particle},
	}
	for _, lv := range levels {
		if math.IsNaN(lv.value) || lv.value < 0 || lv.value > 1 {
			return invalid(lv.name, ErrRadiation)
		}
	}
	if c.Cycles < 0 || c.Cycles > MaxCycles {
		return invalid("cycles", ErrCyclesRange)
	}
	if len(c.Nutrients) > c.MaxFillCells() {
		return invalid("nutrients", ErrTooManyCells)
	}
	if len(c.Obstacles) > c.MaxFillCells() {
		return invalid("obstacles", ErrTooManyCells)
	}
	return c.checkLayout()
}

// checkLayout verifies the invariants the engine relies on: both dimensions within
// the grid size limits, a non-empty start set, every coordinate on the grid, and
// start/nutrient/obstacle sets pairwise disjoint.
func (c Config) checkLayout() error {
	if c.Rows < MinGridSize || c.Rows > MaxGridSize {
		return invalid("rows", ErrGridSize)
	}
	if c.Cols < MinGridSize || c.Cols > MaxGridSize {
		return invalid("cols", ErrGridSize)
	}
	if len(c.Start) == 0 {
		return invalid("start", ErrNoStartCells)
	}

	seen := make(map[Coord]string, len(c.Start)+len(c.Nutrients)+len(c.Obstacles))
	sets := []struct {
		name   string
		coords []Coord
	}{
		{"start", c.Start},
		{"nutrients", c.Nutrients},
		{"obstacles", c.Obstacles},
	}
	for _, set := range sets {
		for _, p := range set.coords {
			if !p.InBounds(c.Rows, c.Cols) {
				return invalid(set.name, fmt.Errorf("%w: %v", ErrOutOfBounds, p))
			}
			if owner, ok := seen[p]; ok {
				if owner == set.name {
					return invalid(set.name, fmt.Errorf("%w: %v", ErrDuplicate, p))
				}
				return invalid(set.name, fmt.Errorf("%w: %v also in %s", ErrOverlap, p, owner))
			}
			seen[p] = set.name
		}
	}
	return nil
}
