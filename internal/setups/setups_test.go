package setups

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/evosim/internal/sim"
)

const smallText = `10
10
1
1
1
0.01
0.01
0.01
[(5, 5)]
[(5, 6)]
[]
50
`

const smallYAML = `
id: ring
name: Ring
grid: {rows: 10}
traits: {genotype: 2, phenotype: 2, environment: 2}
radiation: {xray: 0.1, gamma: 0.1, particle: 0.1}
start: [[4, 4]]
cycles: 10
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "basic.txt"), smallText)
	writeFile(t, filepath.Join(root, "nested", "ring.yaml"), smallYAML)
	writeFile(t, filepath.Join(root, "broken.txt"), "10\n10\n")
	writeFile(t, filepath.Join(root, "notes.md"), "# not a setup")

	all, err := NewLoader(root).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LoadAll() returned %d setups, expected 2", len(all))
	}
	if all[0].ID != "basic" || all[1].ID != "ring" {
		t.Errorf("IDs = %q, %q; expected sorted basic, ring", all[0].ID, all[1].ID)
	}
	if all[0].FilePath != filepath.Join(root, "basic.txt") {
		t.Errorf("FilePath = %q", all[0].FilePath)
	}
	if all[1].Title() != "Ring" || all[0].Title() != "basic" {
		t.Errorf("titles = %q, %q", all[0].Title(), all[1].Title())
	}
}

func TestLoaderLoadByID(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ring.yml"), smallYAML)

	l := NewLoader(root)
	s, err := l.LoadByID("ring")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if s.Config.Genotype != 2 || s.Config.Cols != 10 {
		t.Errorf("config = %+v", s.Config)
	}
	if _, err := l.LoadByID("missing"); err == nil {
		t.Error("LoadByID(missing) should fail")
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll(); err == nil {
		t.Error("LoadAll() on a missing directory should fail")
	}
}

func TestLoadFileReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	writeFile(t, path, "ten\n")
	if _, err := NewLoader("").LoadFile(path); err == nil {
		t.Error("LoadFile() should fail on a malformed file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Setup{
		ID:          "export",
		Name:        "Exported",
		Description: "From the wizard.",
		Config: sim.Config{
			Rows: 10, Cols: 10, Genotype: 4, Phenotype: 5, Environment: 1,
			Xray: 0.25, Gamma: 0, Particle: 1,
			Start:     []sim.Coord{sim.C(9, 0)},
			Nutrients: []sim.Coord{sim.C(8, 0), sim.C(8, 1)},
			Obstacles: []sim.Coord{sim.C(0, 9)},
			Cycles:    77,
		},
	}

	for _, name := range []string{"export.txt", "export.yaml"} {
		path := filepath.Join(dir, name)
		if err := Save(path, want); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		got, err := NewLoader(dir).LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", name, err)
		}
		if got.ID != "export" || got.Name != want.Name || got.Description != want.Description {
			t.Errorf("%s: header = %+v", name, got)
		}
		if got.Config.Cycles != 77 || len(got.Config.Nutrients) != 2 || got.Config.Nutrients[1] != sim.C(8, 1) {
			t.Errorf("%s: config = %+v", name, got.Config)
		}
		if err := got.Config.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", name, err)
		}
	}
}

func TestSaveResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.txt")
	r := sim.RunResult{Occupied: []sim.Coord{sim.C(1, 2)}, MutationCount: 1, FinalGrowth: 0.5, CyclesRun: 3}
	if err := SaveResult(path, r); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[(1, 2)]\n[]\n[]\n1\n0.5\n3\n" {
		t.Errorf("saved %q", data)
	}

	if err := SaveResult(filepath.Join(path, "nested"), r); err == nil {
		t.Error("SaveResult() into a file path should fail")
	}
}

func TestIsTutorial(t *testing.T) {
	if !(Setup{ID: "Tutorial-1"}).IsTutorial() || (Setup{ID: "petri"}).IsTutorial() {
		t.Error("IsTutorial() mismatch")
	}
}

func TestDisplayConversion(t *testing.T) {
	const rows = 10
	tests := []struct {
		x, y int
		c    sim.Coord
	}{
		{1, 1, sim.C(9, 0)},   // bottom-left
		{1, 10, sim.C(0, 0)},  // top-left
		{10, 10, sim.C(0, 9)}, // top-right
		{6, 5, sim.C(5, 5)},
	}

	for _, tc := range tests {
		if got := FromDisplay(tc.x, tc.y, rows); got != tc.c {
			t.Errorf("FromDisplay(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.c)
		}
		if x, y := ToDisplay(tc.c, rows); x != tc.x || y != tc.y {
			t.Errorf("ToDisplay(%v) = (%d, %d), expected (%d, %d)", tc.c, x, y, tc.x, tc.y)
		}
	}
	if got := FormatDisplay(sim.C(5, 5), rows); got != "(6, 5)" {
		t.Errorf("FormatDisplay() = %q", got)
	}
}

func TestParseDisplay(t *testing.T) {
	tests := []struct {
		in      string
		want    sim.Coord
		wantErr error
	}{
		{"1 1", sim.C(9, 0), nil},
		{" 6, 5 ", sim.C(5, 5), nil},
		{"10\t10", sim.C(0, 9), nil},
		{"0 1", sim.Coord{}, sim.ErrOutOfBounds},
		{"1 11", sim.Coord{}, sim.ErrOutOfBounds},
		{"1", sim.Coord{}, ErrDisplayInput},
		{"a b", sim.Coord{}, ErrDisplayInput},
		{"1 2 3", sim.Coord{}, ErrDisplayInput},
	}

	for _, tc := range tests {
		got, err := ParseDisplay(tc.in, 10, 10)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseDisplay(%q) error = %v, expected %v", tc.in, err, tc.wantErr)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseDisplay(%q) = %v, %v; expected %v", tc.in, got, err, tc.want)
		}
	}
}
