package tui

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/evosim/internal/setups"
	"github.com/vovakirdan/evosim/internal/sim"
)

// UnknownRadiation is used for all three levels when the user does not know them.
const UnknownRadiation = 0.01

// ErrInvalidInput wraps every answer the wizard rejects.
var ErrInvalidInput = errors.New("invalid input")

type wizardStep int

const (
	stepSize wizardStep = iota
	stepGenotype
	stepPhenotype
	stepEnvironment
	stepRadiationKnown
	stepXray
	stepGamma
	stepParticle
	stepStart
	stepNutrientCount
	stepNutrient
	stepObstacleCount
	stepObstacle
	stepCycles
	stepDone
)

// Wizard collects a configuration one answer at a time. It holds no terminal state,
// so the same flow can back the Bubble Tea model and tests.
type Wizard struct {
	step wizardStep
	cfg  sim.Config

	start          sim.Coord
	nutrientTarget int
	obstacleTarget int
}

// NewWizard starts a wizard at the grid size question.
func NewWizard() *Wizard {
	return &Wizard{}
}

// Done reports whether every question has been answered.
func (w *Wizard) Done() bool {
	return w.step == stepDone
}

// Prompt returns the current question.
func (w *Wizard) Prompt() string {
	switch w.step {
	case stepSize:
		return fmt.Sprintf("Size of the grid (%d to %d inclusive):", sim.MinGridSize, sim.MaxGridSize)
	case stepGenotype:
		return "Genotype (1-5):"
	case stepPhenotype:
		return "Phenotype (1-5):"
	case stepEnvironment:
		return "Environment (1-5):"
	case stepRadiationKnown:
		return "Are all X-ray, gamma and particle radiation values known? (y/n):"
	case stepXray:
		return "X-ray radiation (0-1):"
	case stepGamma:
		return "Gamma radiation (0-1):"
	case stepParticle:
		return "Particle radiation (0-1):"
	case stepStart:
		return "Start point (x y):"
	case stepNutrientCount:
		return fmt.Sprintf("Number of nutrients (0-%d):", w.cfg.MaxFillCells())
	case stepNutrient:
		return fmt.Sprintf("Nutrient %d/%d (x y):", len(w.cfg.Nutrients)+1, w.nutrientTarget)
	case stepObstacleCount:
		return fmt.Sprintf("Number of obstacles (0-%d):", w.maxObstacles())
	case stepObstacle:
		return fmt.Sprintf("Obstacle %d/%d (x y):", len(w.cfg.Obstacles)+1, w.obstacleTarget)
	case stepCycles:
		return fmt.Sprintf("Number of cycles (0-%d):", sim.MaxCycles)
	default:
		return "Setup complete."
	}
}

// Hints returns context lines shown above the prompt.
func (w *Wizard) Hints() []string {
	switch w.step {
	case stepGenotype:
		return numbered(sim.GenotypeNames)
	case stepPhenotype:
		return numbered(sim.PhenotypeNames)
	case stepEnvironment:
		return numbered(sim.EnvironmentNames)
	case stepStart:
		return []string{fmt.Sprintf("x is the column (1-%d), y the row counted from the bottom (1-%d).", w.cfg.Cols, w.cfg.Rows)}
	case stepNutrientCount, stepObstacleCount:
		return []string{
			"Start: " + setups.FormatDisplay(w.start, w.cfg.Rows),
			fmt.Sprintf("Grid size is %d*%d, at most 25%% of the area may be filled.", w.cfg.Rows, w.cfg.Cols),
		}
	case stepNutrient:
		return []string{"Current nutrients: " + w.formatList(w.cfg.Nutrients)}
	case stepObstacle:
		return []string{
			"Nutrients: " + w.formatList(w.cfg.Nutrients),
			"Current obstacles: " + w.formatList(w.cfg.Obstacles),
		}
	}
	return nil
}

// Submit answers the current question. A rejected answer leaves the wizard on the
// same question and returns an error wrapping ErrInvalidInput.
func (w *Wizard) Submit(input string) error {
	input = strings.TrimSpace(input)

	switch w.step {
	case stepSize:
		n, err := intInRange(input, sim.MinGridSize, sim.MaxGridSize)
		if err != nil {
			return err
		}
		w.cfg.Rows, w.cfg.Cols = n, n
		w.step = stepGenotype

	case stepGenotype, stepPhenotype, stepEnvironment:
		n, err := intInRange(input, sim.MinTrait, sim.MaxTrait)
		if err != nil {
			return err
		}
		switch w.step {
		case stepGenotype:
			w.cfg.Genotype = n
		case stepPhenotype:
			w.cfg.Phenotype = n
		default:
			w.cfg.Environment = n
		}
		w.step++

	case stepRadiationKnown:
		switch strings.ToLower(input) {
		case "y", "yes":
			w.step = stepXray
		case "n", "no":
			w.cfg.Xray, w.cfg.Gamma, w.cfg.Particle = UnknownRadiation, UnknownRadiation, UnknownRadiation
			w.step = stepStart
		default:
			return fmt.Errorf("%w: please enter y or n", ErrInvalidInput)
		}

	case stepXray, stepGamma, stepParticle:
		v, err := unitFloat(input)
		if err != nil {
			return err
		}
		switch w.step {
		case stepXray:
			w.cfg.Xray = v
		case stepGamma:
			w.cfg.Gamma = v
		default:
			w.cfg.Particle = v
		}
		w.step++

	case stepStart:
		c, err := w.coord(input)
		if err != nil {
			return err
		}
		w.start = c
		w.cfg.Start = []sim.Coord{c}
		w.step = stepNutrientCount

	case stepNutrientCount:
		n, err := intInRange(input, 0, w.cfg.MaxFillCells())
		if err != nil {
			return err
		}
		w.nutrientTarget = n
		w.step = stepNutrient
		w.skipFilled()

	case stepNutrient:
		c, err := w.coord(input)
		if err != nil {
			return err
		}
		switch {
		case c == w.start:
			return fmt.Errorf("%w: can't be the same as start", ErrInvalidInput)
		case slices.Contains(w.cfg.Nutrients, c):
			return fmt.Errorf("%w: two nutrients can't be in the same place", ErrInvalidInput)
		}
		w.cfg.Nutrients = append(w.cfg.Nutrients, c)
		w.skipFilled()

	case stepObstacleCount:
		n, err := intInRange(input, 0, w.maxObstacles())
		if err != nil {
			return err
		}
		w.obstacleTarget = n
		w.step = stepObstacle
		w.skipFilled()

	case stepObstacle:
		c, err := w.coord(input)
		if err != nil {
			return err
		}
		switch {
		case c == w.start:
			return fmt.Errorf("%w: can't be the same as start", ErrInvalidInput)
		case slices.Contains(w.cfg.Nutrients, c):
			return fmt.Errorf("%w: can't overlap with nutrients", ErrInvalidInput)
		case slices.Contains(w.cfg.Obstacles, c):
			return fmt.Errorf("%w: two obstacles can't be in the same place", ErrInvalidInput)
		}
		w.cfg.Obstacles = append(w.cfg.Obstacles, c)
		w.skipFilled()

	case stepCycles:
		n, err := intInRange(input, 0, sim.MaxCycles)
		if err != nil {
			return err
		}
		w.cfg.Cycles = n
		w.step = stepDone

	default:
		return fmt.Errorf("%w: setup already complete", ErrInvalidInput)
	}
	return nil
}

// skipFilled moves past a coordinate list once it holds the requested count.
func (w *Wizard) skipFilled() {
	if w.step == stepNutrient && len(w.cfg.Nutrients) >= w.nutrientTarget {
		w.step = stepObstacleCount
	}
	if w.step == stepObstacle && len(w.cfg.Obstacles) >= w.obstacleTarget {
		w.step = stepCycles
	}
}

// maxObstacles is the fill limit, further capped by the cells still free.
func (w *Wizard) maxObstacles() int {
	free := w.cfg.Rows*w.cfg.Cols - len(w.cfg.Start) - len(w.cfg.Nutrients)
	return min(w.cfg.MaxFillCells(), max(free, 0))
}

// Config returns the collected configuration, validated. It fails until Done.
func (w *Wizard) Config() (sim.Config, error) {
	if !w.Done() {
		return sim.Config{}, fmt.Errorf("%w: setup not complete", ErrInvalidInput)
	}
	cfg := w.cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

func (w *Wizard) coord(input string) (sim.Coord, error) {
	c, err := setups.ParseDisplay(input, w.cfg.Rows, w.cfg.Cols)
	if err != nil {
		return sim.Coord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c, nil
}

func (w *Wizard) formatList(cs []sim.Coord) string {
	if len(cs) == 0 {
		return "none"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = setups.FormatDisplay(c, w.cfg.Rows)
	}
	return strings.Join(parts, " ")
}

func intInRange(input string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: please enter a whole number", ErrInvalidInput)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: enter a number between %d and %d", ErrInvalidInput, lo, hi)
	}
	return n, nil
}

// unitFloat reads a value in [0, 1] rounded to two decimals.
func unitFloat(input string) (float64, error) {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: please enter a number between 0 and 1", ErrInvalidInput)
	}
	v = sim.Round2(v)
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: value must be between 0 and 1", ErrInvalidInput)
	}
	return v, nil
}

func numbered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%d. %s", i+1, n)
	}
	return out
}
