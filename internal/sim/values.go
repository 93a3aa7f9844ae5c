package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Fallbacks used when a derivation cannot produce a finite number.
const (
	FallbackGrowth   = 0.5
	FallbackMutation = 0.0
)

// Trait lookup tables, indexed 1-5. Missing indices map to 0.
var (
	genotypeValues    = map[int]float64{1: 0.8, 2: 0.2, 3: 0.3, 4: 0.7, 5: 0.05}
	phenotypeValues   = map[int]float64{1: 0.8, 2: 0.4, 3: 0.6, 4: 0.6, 5: 0.5}
	environmentValues = map[int]float64{1: 0.7, 2: 0.2, 3: 0.6, 4: 0.3, 5: 0.5}
)

// Display names for the trait indices, in index order (1-5).
var (
	GenotypeNames    = []string{"Fast growth", "Slow growth", "High food consumption", "Low food consumption", "No specific change"}
	PhenotypeNames   = []string{"Small", "Large", "Round", "Square", "Mixed"}
	EnvironmentNames = []string{"Rain", "Sun", "Warm", "Cold", "No specific change"}
)

// TraitName returns the display name for a 1-based index, or "Unknown".
func TraitName(names []string, index int) string {
	if index < 1 || index > len(names) {
		return "Unknown"
	}
	return names[index-1]
}

// Source is the random source shared by the value model and the engine.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Values seeds an engine with its initial growth and mutation probabilities.
type Values struct {
	Growth   float64
	Mutation float64
}

// Sigmoid is the logistic function. Overflow saturates to 0.5 rather than 0 or 1.
func Sigmoid(x float64) float64 {
	if math.IsNaN(x) {
		return 0.5
	}
	e := math.Exp(-x)
	if math.IsInf(e, 0) {
		return 0.5
	}
	return 1 / (1 + e)
}

// NutrientDensity counts nutrient cells among the 8 neighbors of cell, clipped to the
// grid, and divides by 8.
func NutrientDensity(cfg Config, cell Coord) float64 {
	nutrients := make(map[Coord]struct{}, len(cfg.Nutrients))
	for _, n := range cfg.Nutrients {
		nutrients[n] = struct{}{}
	}
	found := 0
	for _, n := range cell.Neighbors(cfg.Rows, cfg.Cols) {
		if _, ok := nutrients[n]; ok {
			found++
		}
	}
	return float64(found) / 8
}

// ValueModel derives the growth and mutation probabilities of a configuration.
// Growth samples a random start cell, so the first result is cached and returned
// unchanged by every later call.
type ValueModel struct {
	cfg    Config
	rng    Source
	growth float64
	cached bool
	sample Coord
}

// NewValueModel binds a value model to a configuration and random source.
func NewValueModel(cfg Config, rng Source) *ValueModel {
	return &ValueModel{cfg: cfg.Clone(), rng: rng}
}

// Growth returns the mean of the squashed genotype, phenotype, environment and
// nutrient-density terms.
func (m *ValueModel) Growth() float64 {
	if m.cached {
		return m.growth
	}

	terms := []float64{
		genotypeValues[m.cfg.Genotype],
		phenotypeValues[m.cfg.Phenotype],
		environmentValues[m.cfg.Environment],
		m.nutrientTerm(),
	}
	squashed := make([]float64, len(terms))
	for i, t := range terms {
		squashed[i] = Sigmoid(t)
	}

	g := stat.Mean(squashed, nil)
	if math.IsNaN(g) || math.IsInf(g, 0) {
		g = FallbackGrowth
	}
	m.growth = g
	m.cached = true
	return g
}

// nutrientTerm picks one start cell uniformly at random and measures the nutrient
// density around it.
func (m *ValueModel) nutrientTerm() float64 {
	if len(m.cfg.Start) == 0 || m.rng == nil {
		return FallbackGrowth
	}
	m.sample = m.cfg.Start[m.rng.Intn(len(m.cfg.Start))]
	return NutrientDensity(m.cfg, m.sample)
}

// Sample returns the start cell drawn for the nutrient term, and whether one was drawn.
func (m *ValueModel) Sample() (Coord, bool) {
	return m.sample, m.cached && len(m.cfg.Start) > 0 && m.rng != nil
}

// Mutation returns the mean radiation level rounded to two decimals.
func (m *ValueModel) Mutation() float64 {
	levels := []float64{m.cfg.Xray, m.cfg.Gamma, m.cfg.Particle}
	for _, l := range levels {
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return FallbackMutation
		}
	}
	return Round2(stat.Mean(levels, nil))
}

// Values derives both probabilities. Growth is drawn first, matching the order the
// random source is consumed in a normal run.
func (m *ValueModel) Values() Values {
	return Values{Growth: m.Growth(), Mutation: m.Mutation()}
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
