package sim

import "testing"

// scriptedSource replays fixed draws so a test controls every random decision.
type scriptedSource struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("scriptedSource: unexpected Intn(%d) draw", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scriptedSource: scripted %d out of range for Intn(%d)", v, n)
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatalf("scriptedSource: unexpected Float64 draw")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// selfCycles scripts n cycles that select the only occupied cell and propose it again,
// with a failed mutation draw each time.
func selfCycles(n int) ([]int, []float64) {
	ints := make([]int, 0, 3*n)
	floats := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		ints = append(ints, 0, 1, 1)
		floats = append(floats, 0.99)
	}
	return ints, floats
}

// baseConfig is a 10x10 grid with one start cell in the middle.
func baseConfig() Config {
	return Config{
		Rows:        10,
		Cols:        10,
		Genotype:    1,
		Phenotype:   1,
		Environment: 1,
		Xray:        0.01,
		Gamma:       0.01,
		Particle:    0.01,
		Start:       []Coord{C(5, 5)},
		Cycles:      100,
	}
}

const epsilon = 1e-9

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < epsilon
}
