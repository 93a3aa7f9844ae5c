package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a whole trace.
type Summary struct {
	Preset        string  `yaml:"preset"`
	Seed          int64   `yaml:"seed"`
	Cycles        int     `yaml:"cycles"`
	Reason        string  `yaml:"reason"`
	InitialGrowth float64 `yaml:"initial_growth"`
	FinalGrowth   float64 `yaml:"final_growth"`
	GrowthMean    float64 `yaml:"growth_mean"`
	GrowthStdDev  float64 `yaml:"growth_stddev"`
	GrowthMin     float64 `yaml:"growth_min"`
	GrowthMax     float64 `yaml:"growth_max"`
	Mutations     int     `yaml:"mutations"`
	LowGrowth     int     `yaml:"low_growth_cycles"`
	Occupied      int     `yaml:"occupied"`
	NutrientsLeft int     `yaml:"nutrients_left"`

	Outcomes map[string]int `yaml:"outcomes"`
}

// Summarize computes growth statistics and outcome counts over records. An empty
// trace yields a zero summary with an empty outcome map.
func Summarize(records []CycleRecord) Summary {
	s := Summary{Outcomes: make(map[string]int)}
	if len(records) == 0 {
		return s
	}

	growth := make([]float64, len(records))
	for i, r := range records {
		growth[i] = r.Growth
		s.Outcomes[r.Outcome]++
		if r.LowGrowth {
			s.LowGrowth++
		}
	}

	last := records[len(records)-1]
	s.Cycles = last.Cycle
	s.Reason = last.Reason
	s.FinalGrowth = last.Growth
	s.Mutations = last.MutationCount
	s.Occupied = last.Occupied
	s.NutrientsLeft = last.Nutrients

	s.GrowthMean, s.GrowthStdDev = stat.MeanStdDev(growth, nil)
	if len(growth) < 2 {
		s.GrowthStdDev = 0
	}
	s.GrowthMin = floats.Min(growth)
	s.GrowthMax = floats.Max(growth)
	return s
}
