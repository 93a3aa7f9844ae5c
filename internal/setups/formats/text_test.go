package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/evosim/internal/sim"
)

const tutorialText = `10
10
1
2
3
0.1
0.2
0.3
[(5, 5)]
[(5, 6), (2, 2)]
{(7, 7)}
25
Getting started
Watch the entity spread towards the nutrients.
`

func TestParseText(t *testing.T) {
	s, err := ParseText([]byte(tutorialText))
	if err != nil {
		t.Fatalf("ParseText() failed: %v", err)
	}

	c := s.Config
	if c.Rows != 10 || c.Cols != 10 || c.Genotype != 1 || c.Phenotype != 2 || c.Environment != 3 {
		t.Errorf("integer fields = %+v", c)
	}
	if c.Xray != 0.1 || c.Gamma != 0.2 || c.Particle != 0.3 {
		t.Errorf("radiation = %v %v %v", c.Xray, c.Gamma, c.Particle)
	}
	if len(c.Start) != 1 || c.Start[0] != sim.C(5, 5) {
		t.Errorf("start = %v", c.Start)
	}
	if len(c.Nutrients) != 2 || c.Nutrients[0] != sim.C(5, 6) || c.Nutrients[1] != sim.C(2, 2) {
		t.Errorf("nutrients = %v", c.Nutrients)
	}
	if len(c.Obstacles) != 1 || c.Obstacles[0] != sim.C(7, 7) {
		t.Errorf("obstacles = %v", c.Obstacles)
	}
	if c.Cycles != 25 {
		t.Errorf("cycles = %d, expected 25", c.Cycles)
	}
	if s.Name != "Getting started" || s.Description != "Watch the entity spread towards the nutrients." {
		t.Errorf("description = %q / %q", s.Name, s.Description)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("parsed setup should be valid: %v", err)
	}
}

func TestParseTextDescriptionReadFromEnd(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(tutorialText), "\n")
	// Extra lines between the fields and the description are ignored.
	withExtra := append(append(append([]string{}, lines[:12]...), "ignored", "also ignored"), lines[12:]...)

	s, err := ParseText([]byte(strings.Join(withExtra, "\n")))
	if err != nil {
		t.Fatalf("ParseText() failed: %v", err)
	}
	if s.Name != "Getting started" {
		t.Errorf("title = %q", s.Name)
	}
}

func TestParseTextWithoutDescription(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(tutorialText), "\n")

	tests := []struct {
		name  string
		lines []string
	}{
		{"fields only", lines[:12]},
		{"one extra line", lines[:13]},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseText([]byte(strings.Join(tc.lines, "\r\n")))
			if err != nil {
				t.Fatalf("ParseText() failed: %v", err)
			}
			if s.Name != "" || s.Description != "" {
				t.Errorf("unexpected description %q / %q", s.Name, s.Description)
			}
			if s.Config.Cycles != 25 {
				t.Errorf("cycles = %d", s.Config.Cycles)
			}
		})
	}
}

func TestParseTextErrors(t *testing.T) {
	base := strings.Split(strings.TrimSpace(tutorialText), "\n")

	tests := []struct {
		name      string
		line      int // 1-based line to replace, 0 to truncate
		value     string
		wantLine  int
		wantField string
	}{
		{"truncated", 0, "", 11, "file"},
		{"non-numeric rows", 1, "ten", 1, "rows"},
		{"float genotype", 3, "1.5", 3, "genotype"},
		{"bad xray", 6, "high", 6, "xray"},
		{"bad start literal", 9, "(5, 5)", 9, "start"},
		{"garbage in literal", 10, "[(5, 6), foo]", 10, "nutrients"},
		{"bad cycles", 12, "", 12, "cycles"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := append([]string{}, base...)
			if tc.line == 0 {
				lines = lines[:11]
			} else {
				lines[tc.line-1] = tc.value
			}

			_, err := ParseText([]byte(strings.Join(lines, "\n")))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseText() error = %v, expected *ParseError", err)
			}
			if perr.Line != tc.wantLine || perr.Field != tc.wantField {
				t.Errorf("ParseError at line %d (%s), expected line %d (%s)", perr.Line, perr.Field, tc.wantLine, tc.wantField)
			}
		})
	}
}

func TestParseTextIsBestEffort(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(tutorialText), "\n")
	lines[2] = "9"        // genotype out of range
	lines[8] = "[(5, 5)]" // start stays
	lines[9] = "[(5, 5)]" // nutrient overlaps start

	s, err := ParseText([]byte(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ParseText() should not range-check: %v", err)
	}
	if err := s.Config.Validate(); !errors.Is(err, sim.ErrTrait) {
		t.Errorf("Validate() = %v, expected ErrTrait", err)
	}
}

func TestFormatTextRoundTrip(t *testing.T) {
	want, err := ParseText([]byte(tutorialText))
	if err != nil {
		t.Fatalf("ParseText() failed: %v", err)
	}

	got, err := ParseText(FormatText(want))
	if err != nil {
		t.Fatalf("ParseText(FormatText()) failed: %v", err)
	}
	if string(FormatText(got)) != string(FormatText(want)) {
		t.Errorf("round trip changed the file:\n%s\nvs\n%s", FormatText(got), FormatText(want))
	}
	if got.Name != want.Name || got.Description != want.Description {
		t.Errorf("description lost: %q / %q", got.Name, got.Description)
	}
}

func TestFormatTextLayout(t *testing.T) {
	s := Setup{Config: sim.Config{
		Rows: 10, Cols: 10, Genotype: 1, Phenotype: 1, Environment: 5,
		Xray: 0.01, Gamma: 0.5, Particle: 1,
		Start:  []sim.Coord{sim.C(0, 0)},
		Cycles: 0,
	}}
	expected := "10\n10\n1\n1\n5\n0.01\n0.5\n1\n[(0, 0)]\n[]\n[]\n0\n"
	if got := string(FormatText(s)); got != expected {
		t.Errorf("FormatText() = %q, expected %q", got, expected)
	}

	s.Name = "Title"
	s.Description = "line one\nline two"
	if got := string(FormatText(s)); !strings.HasSuffix(got, "0\nTitle\nline one line two\n") {
		t.Errorf("description block = %q", got)
	}
}

func TestParseCoords(t *testing.T) {
	tests := []struct {
		in      string
		want    []sim.Coord
		wantErr bool
	}{
		{"[]", []sim.Coord{}, false},
		{"set()", []sim.Coord{}, false},
		{"{}", []sim.Coord{}, false},
		{"[(1, 2)]", []sim.Coord{sim.C(1, 2)}, false},
		{"[(1,2),(3 , 4),]", []sim.Coord{sim.C(1, 2), sim.C(3, 4)}, false},
		{"{(3, 4), (1, 2), (3, 4)}", []sim.Coord{sim.C(3, 4), sim.C(1, 2)}, false},
		{"[(-1, 2)]", []sim.Coord{sim.C(-1, 2)}, false},
		{"(1, 2)", nil, true},
		{"[(1, 2), (3)]", nil, true},
		{"[1, 2]", nil, true},
		{"", nil, true},
	}

	for _, tc := range tests {
		got, err := ParseCoords(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCoords(%q) error = %v, expected error %v", tc.in, err, tc.wantErr)
			continue
		}
		if tc.wantErr {
			if !errors.Is(err, ErrLiteral) {
				t.Errorf("ParseCoords(%q) error = %v, expected ErrLiteral", tc.in, err)
			}
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("ParseCoords(%q) = %v, expected %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseCoords(%q)[%d] = %v, expected %v", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestFormatCoords(t *testing.T) {
	if got := FormatCoords(nil); got != "[]" {
		t.Errorf("FormatCoords(nil) = %q", got)
	}
	if got := FormatCoords([]sim.Coord{sim.C(5, 5), sim.C(5, 6)}); got != "[(5, 5), (5, 6)]" {
		t.Errorf("FormatCoords() = %q", got)
	}
}

func TestParseByExtension(t *testing.T) {
	if _, err := Parse([]byte(tutorialText), ".txt"); err != nil {
		t.Errorf("Parse(.txt) failed: %v", err)
	}
	if _, err := Parse([]byte(tutorialText), ".json"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Parse(.json) = %v, expected ErrUnsupported", err)
	}
}
