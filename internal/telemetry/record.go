// Package telemetry records per-cycle traces of a run as CSV and writes an
// aggregated summary when the run ends.
package telemetry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/evosim/internal/sim"
)

// CycleRecord is one row of trace.csv.
type CycleRecord struct {
	Cycle          int     `csv:"cycle"`
	SelectedRow    int     `csv:"selected_row"`
	SelectedCol    int     `csv:"selected_col"`
	ProposedRow    int     `csv:"proposed_row"`
	ProposedCol    int     `csv:"proposed_col"`
	Outcome        string  `csv:"outcome"`
	Mutated        bool    `csv:"mutated"`
	MutationDelta  float64 `csv:"mutation_delta"`
	LowGrowth      bool    `csv:"low_growth"`
	Recovered      bool    `csv:"recovered"`
	Growth         float64 `csv:"growth"`
	MutationCount  int     `csv:"mutations"`
	SurvivalBudget int     `csv:"survival_budget"`
	Occupied       int     `csv:"occupied"`
	Nutrients      int     `csv:"nutrients"`
	Status         string  `csv:"status"`
	Reason         string  `csv:"reason"`
}

// FromReport converts an engine cycle report into a trace row.
func FromReport(rep sim.CycleReport) CycleRecord {
	return CycleRecord{
		Cycle:          rep.Cycle,
		SelectedRow:    rep.Selected.Row,
		SelectedCol:    rep.Selected.Col,
		ProposedRow:    rep.Proposed.Row,
		ProposedCol:    rep.Proposed.Col,
		Outcome:        rep.Outcome.String(),
		Mutated:        rep.Mutated,
		MutationDelta:  rep.MutationDelta,
		LowGrowth:      rep.LowGrowth,
		Recovered:      rep.Recovered,
		Growth:         rep.Growth,
		MutationCount:  rep.MutationCount,
		SurvivalBudget: rep.SurvivalBudget,
		Occupied:       rep.Occupied,
		Nutrients:      rep.Nutrients,
		Status:         rep.Status.String(),
		Reason:         rep.Reason.String(),
	}
}

// ReadTrace parses a trace written by a Recorder.
func ReadTrace(r io.Reader) ([]CycleRecord, error) {
	var records []CycleRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("telemetry: reading trace: %w", err)
	}
	return records, nil
}
