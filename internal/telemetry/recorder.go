package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/evosim/internal/sim"
)

// File names written into the trace directory.
const (
	TraceFile   = "trace.csv"
	SummaryFile = "summary.yaml"
)

// Recorder writes trace.csv while a run progresses and summary.yaml when it ends.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	dir           string
	file          *os.File
	headerWritten bool
	records       []CycleRecord
}

// NewRecorder creates the trace directory and opens trace.csv.
// Returns nil if dir is empty (tracing disabled).
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating trace directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, TraceFile))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", TraceFile, err)
	}
	return &Recorder{dir: dir, file: f}, nil
}

// Dir returns the trace directory.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Record appends one cycle to trace.csv.
func (r *Recorder) Record(rep sim.CycleReport) error {
	if r == nil {
		return nil
	}

	rec := FromReport(rep)
	records := []CycleRecord{rec}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("telemetry: writing trace: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("telemetry: writing trace: %w", err)
		}
	}

	r.records = append(r.records, rec)
	return nil
}

// Finish writes summary.yaml for the finished run and closes trace.csv.
func (r *Recorder) Finish(preset string, seed int64, res sim.RunResult) (Summary, error) {
	if r == nil {
		return Summary{}, nil
	}

	s := Summarize(r.records)
	s.Preset = preset
	s.Seed = seed
	s.Reason = res.Reason.String()
	s.Cycles = res.CyclesRun
	s.InitialGrowth = res.InitialGrowth
	s.FinalGrowth = res.FinalGrowth
	s.Mutations = res.MutationCount
	s.Occupied = len(res.Occupied)
	s.NutrientsLeft = len(res.Nutrients)

	data, err := yaml.Marshal(s)
	if err != nil {
		r.Close()
		return s, fmt.Errorf("telemetry: encoding summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, SummaryFile), data, 0o644); err != nil {
		r.Close()
		return s, fmt.Errorf("telemetry: writing %s: %w", SummaryFile, err)
	}
	return s, r.Close()
}

// Close closes trace.csv. It is safe to call more than once.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	if err != nil {
		return fmt.Errorf("telemetry: closing trace: %w", err)
	}
	return nil
}
