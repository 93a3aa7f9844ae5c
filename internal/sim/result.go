package sim

// Status is the engine's lifecycle state.
type Status int

const (
	StatusRunning Status = iota
	StatusTerminated
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusTerminated {
		return "terminated"
	}
	return "running"
}

// Reason explains why a run terminated.
type Reason int

const (
	ReasonNone         Reason = iota
	ReasonExhausted           // cycle budget used up
	ReasonSurvivalLost        // survival budget reached zero
	ReasonStarved             // too few nutrients left to recover
)

// String returns the reason name as stored in run history.
func (r Reason) String() string {
	switch r {
	case ReasonExhausted:
		return "exhausted"
	case ReasonSurvivalLost:
		return "survival_lost"
	case ReasonStarved:
		return "starved"
	default:
		return "none"
	}
}

// Describe returns a sentence for end-of-run output.
func (r Reason) Describe() string {
	switch r {
	case ReasonExhausted:
		return "All cycles completed."
	case ReasonSurvivalLost:
		return "Entity short of nutrients, survival budget exhausted."
	case ReasonStarved:
		return "Entity unlikely to survive from here: nutrients depleted."
	default:
		return "Simulation still running."
	}
}

// ParseReason is the inverse of Reason.String. Unknown names map to ReasonNone.
func ParseReason(s string) Reason {
	switch s {
	case "exhausted":
		return ReasonExhausted
	case "survival_lost":
		return ReasonSurvivalLost
	case "starved":
		return ReasonStarved
	default:
		return ReasonNone
	}
}

// Outcome is how the proposed coordinate of a cycle was resolved.
type Outcome int

const (
	OutcomeSelf     Outcome = iota // proposal was already occupied
	OutcomeConsumed                // proposal held a nutrient, now occupied
	OutcomeBlocked                 // proposal held an obstacle
	OutcomeSpread                  // empty proposal, spread succeeded
	OutcomeStalled                 // empty proposal, spread draw failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSelf:
		return "self"
	case OutcomeConsumed:
		return "consumed"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeSpread:
		return "spread"
	case OutcomeStalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// CycleReport describes what happened during one cycle.
type CycleReport struct {
	Cycle          int // 1-based index of the cycle just completed
	Selected       Coord
	Proposed       Coord
	Outcome        Outcome
	Mutated        bool
	MutationDelta  float64
	LowGrowth      bool // growth was <= 0 at the survival check
	Recovered      bool // the recovery bump was applied
	Growth         float64
	MutationCount  int
	SurvivalBudget int
	Occupied       int
	Nutrients      int
	Status         Status
	Reason         Reason
}

// RunResult is the terminal snapshot of a run handed to the save collaborator.
type RunResult struct {
	Occupied      []Coord
	Nutrients     []Coord
	Obstacles     []Coord
	MutationCount int
	InitialGrowth float64
	FinalGrowth   float64
	CyclesRun     int
	Reason        Reason
}

// Snapshot captures the live engine state for display and determinism checks.
type Snapshot struct {
	Rows           int
	Cols           int
	CyclesRun      int
	CyclesTotal    int
	Occupied       int
	Nutrients      int
	Obstacles      int
	Growth         float64
	InitialGrowth  float64
	Mutation       float64
	MutationCount  int
	SurvivalBudget int
	Status         Status
	Reason         Reason
}
