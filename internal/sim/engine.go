package sim

import (
	"errors"
	"slices"
)

// Per-cycle growth adjustments and survival parameters.
const (
	SelfPenalty           = 0.01  // proposal already occupied
	NutrientGain          = 0.05  // proposal held a nutrient
	ObstaclePenalty       = 0.01  // proposal blocked by an obstacle
	SpreadCost            = 0.01  // charged on every spread attempt into an empty cell
	MutationSpread        = 0.05  // mutation delta is drawn from [-MutationSpread, MutationSpread)
	RecoveryBump          = 0.025 // applied after a low-growth cycle while nutrients remain
	StarvationFraction    = 0.01  // nutrients at or below this share of rows² cannot sustain recovery
	InitialSurvivalBudget = 3
)

var (
	// ErrTerminated is returned by Step once the run has ended.
	ErrTerminated = errors.New("sim: run already terminated")
	// ErrNoOccupiedCells means a cycle started with nothing to select. The start set
	// must be non-empty, so this is fatal for the run.
	ErrNoOccupiedCells = errors.New("sim: no occupied cell to select")
)

// Engine owns the mutable state of one run and advances it one cycle at a time.
type Engine struct {
	cfg Config
	rng Source

	grid      *cellGrid
	occupied  []Coord
	nutrients []Coord

	growth        float64
	initialGrowth float64
	mutation      float64
	mutationCount int
	budget        int
	cyclesRun     int

	status Status
	reason Reason
}

// NewEngine creates an engine from a configuration, its derived values and the shared
// random source. The configuration is copied; later changes by the caller have no effect.
// A zero cycle budget yields an engine that is already terminated as exhausted.
func NewEngine(cfg Config, v Values, rng Source) (*Engine, error) {
	if rng == nil {
		return nil, errors.New("sim: nil random source")
	}
	cfg = cfg.Clone()
	if err := cfg.checkLayout(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:           cfg,
		rng:           rng,
		grid:          newCellGrid(cfg.Rows, cfg.Cols),
		occupied:      cloneCoords(cfg.Start),
		nutrients:     cloneCoords(cfg.Nutrients),
		growth:        v.Growth,
		initialGrowth: v.Growth,
		mutation:      v.Mutation,
		budget:        InitialSurvivalBudget,
		status:        StatusRunning,
	}
	for _, c := range e.occupied {
		e.grid.set(c, CellOccupied)
	}
	for _, c := range e.nutrients {
		e.grid.set(c, CellNutrient)
	}
	for _, c := range cfg.Obstacles {
		e.grid.set(c, CellObstacle)
	}

	if cfg.Cycles <= 0 {
		e.terminate(ReasonExhausted)
	}
	return e, nil
}

// Step runs a single cycle: select, propose, resolve, mutate, survive.
func (e *Engine) Step() (CycleReport, error) {
	if e.status == StatusTerminated {
		return CycleReport{}, ErrTerminated
	}
	if len(e.occupied) == 0 {
		return CycleReport{}, ErrNoOccupiedCells
	}

	rep := CycleReport{}
	rep.Selected = e.occupied[e.rng.Intn(len(e.occupied))]
	rep.Proposed = e.propose(rep.Selected)
	rep.Outcome = e.resolve(rep.Proposed)
	e.mutate(&rep)
	e.survive(&rep)

	e.cyclesRun++
	if e.status == StatusRunning && e.cyclesRun >= e.cfg.Cycles {
		e.terminate(ReasonExhausted)
	}

	rep.Cycle = e.cyclesRun
	rep.Growth = e.growth
	rep.MutationCount = e.mutationCount
	rep.SurvivalBudget = e.budget
	rep.Occupied = len(e.occupied)
	rep.Nutrients = len(e.nutrients)
	rep.Status = e.status
	rep.Reason = e.reason
	return rep, nil
}

// Run steps until the run terminates and returns the final result.
func (e *Engine) Run() (RunResult, error) {
	for e.status == StatusRunning {
		if _, err := e.Step(); err != nil {
			return e.Result(), err
		}
	}
	return e.Result(), nil
}

// propose offsets each axis independently by -1, 0 or +1 and reflects the result
// back onto the grid. The row offset is drawn before the column offset.
func (e *Engine) propose(from Coord) Coord {
	row := from.Row + e.rng.Intn(3) - 1
	col := from.Col + e.rng.Intn(3) - 1
	return Coord{Row: Reflect(row, e.cfg.Rows), Col: Reflect(col, e.cfg.Cols)}
}

// resolve applies the first matching rule: occupied, nutrient, obstacle, then a
// probabilistic spread into an empty cell. The order decides outcomes and must not change.
func (e *Engine) resolve(p Coord) Outcome {
	switch e.grid.get(p) {
	case CellOccupied:
		e.growth -= SelfPenalty
		return OutcomeSelf
	case CellNutrient:
		e.growth += NutrientGain
		e.consume(p)
		return OutcomeConsumed
	case CellObstacle:
		e.growth -= ObstaclePenalty
		return OutcomeBlocked
	}

	outcome := OutcomeStalled
	if e.rng.Float64() < e.growth {
		e.occupy(p)
		outcome = OutcomeSpread
	}
	e.growth -= SpreadCost
	return outcome
}

func (e *Engine) occupy(p Coord) {
	e.grid.set(p, CellOccupied)
	e.occupied = append(e.occupied, p)
}

// consume moves a nutrient cell into the occupied set, keeping nutrient order.
func (e *Engine) consume(p Coord) {
	if i := slices.Index(e.nutrients, p); i >= 0 {
		e.nutrients = slices.Delete(e.nutrients, i, i+1)
	}
	e.occupy(p)
}

func (e *Engine) mutate(rep *CycleReport) {
	if e.rng.Float64() >= e.mutation {
		return
	}
	e.mutationCount++
	delta := Round2(-MutationSpread + 2*MutationSpread*e.rng.Float64())
	e.growth += delta
	rep.Mutated = true
	rep.MutationDelta = delta
}

// survive handles a non-positive growth value. Each such cycle costs one unit of the
// survival budget. The recovery bump is still applied on the cycle that exhausts the
// budget, so the final growth value includes it; that run ends as survival lost.
// With too few nutrients left the run ends as starved instead of recovering.
func (e *Engine) survive(rep *CycleReport) {
	if e.growth > 0 {
		return
	}
	rep.LowGrowth = true

	e.budget--
	if e.budget <= 0 {
		e.budget = 0
		e.terminate(ReasonSurvivalLost)
	}

	if float64(len(e.nutrients)) <= StarvationFraction*float64(e.cfg.Rows*e.cfg.Rows) {
		e.terminate(ReasonStarved)
		return
	}
	e.growth += RecoveryBump
	rep.Recovered = true
}

// terminate ends the run. The first reason recorded wins.
func (e *Engine) terminate(r Reason) {
	if e.status == StatusTerminated {
		return
	}
	e.status = StatusTerminated
	e.reason = r
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Reason returns why the run terminated, or ReasonNone while running.
func (e *Engine) Reason() Reason {
	return e.reason
}

// Config returns a copy of the configuration the engine runs.
func (e *Engine) Config() Config {
	return e.cfg.Clone()
}

// Growth returns the live growth value.
func (e *Engine) Growth() float64 {
	return e.growth
}

// CyclesRun returns the number of completed cycles.
func (e *Engine) CyclesRun() int {
	return e.cyclesRun
}

// Occupied returns a copy of the occupied cells in the order they were added.
func (e *Engine) Occupied() []Coord {
	return cloneCoords(e.occupied)
}

// Nutrients returns a copy of the remaining nutrient cells.
func (e *Engine) Nutrients() []Coord {
	return cloneCoords(e.nutrients)
}

// Obstacles returns a copy of the obstacle cells.
func (e *Engine) Obstacles() []Coord {
	return cloneCoords(e.cfg.Obstacles)
}

// Cell returns the kind of the cell at c.
func (e *Engine) Cell(c Coord) CellKind {
	return e.grid.get(c)
}

// Grid renders the live state.
func (e *Engine) Grid() [][]rune {
	return Render(e.occupied, e.nutrients, e.cfg.Obstacles, e.cfg.Rows, e.cfg.Cols)
}

// Snapshot returns the current state counters.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Rows:           e.cfg.Rows,
		Cols:           e.cfg.Cols,
		CyclesRun:      e.cyclesRun,
		CyclesTotal:    e.cfg.Cycles,
		Occupied:       len(e.occupied),
		Nutrients:      len(e.nutrients),
		Obstacles:      len(e.cfg.Obstacles),
		Growth:         e.growth,
		InitialGrowth:  e.initialGrowth,
		Mutation:       e.mutation,
		MutationCount:  e.mutationCount,
		SurvivalBudget: e.budget,
		Status:         e.status,
		Reason:         e.reason,
	}
}

// Result freezes the current state into a RunResult.
func (e *Engine) Result() RunResult {
	return RunResult{
		Occupied:      e.Occupied(),
		Nutrients:     e.Nutrients(),
		Obstacles:     e.Obstacles(),
		MutationCount: e.mutationCount,
		InitialGrowth: e.initialGrowth,
		FinalGrowth:   e.growth,
		CyclesRun:     e.cyclesRun,
		Reason:        e.reason,
	}
}

// Start derives the configuration's values with a fresh ValueModel and builds an
// engine on the same random source, so one seed reproduces the whole run.
func Start(cfg Config, rng Source) (*Engine, error) {
	return NewEngine(cfg, NewValueModel(cfg, rng).Values(), rng)
}
