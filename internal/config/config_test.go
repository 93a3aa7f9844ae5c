package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/evosim/internal/core"
	"github.com/vovakirdan/evosim/internal/sim"
)

func TestEmbeddedMatchesBuiltin(t *testing.T) {
	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultSettings() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSettings())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evosim.yaml")
	data := []byte("pacing:\n  max_delay_ms: 250\nstorage:\n  path: /tmp/runs.db\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Pacing.MaxDelayMS != 250 || cfg.Storage.Path != "/tmp/runs.db" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Missing keys keep their defaults.
	if cfg.Pacing.MinDelayMS != 5 || cfg.Display.Occupied.Symbol != "E" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing explicit path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pacing: [1, 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestNormalize(t *testing.T) {
	s := DefaultSettings()
	s.Pacing = PacingConfig{InitialLevel: 3, MinDelayMS: -5, MaxDelayMS: -10, Steps: 0}
	s.normalize()

	if s.Pacing.InitialLevel != 1 || s.Pacing.MinDelayMS != 0 || s.Pacing.MaxDelayMS != 0 || s.Pacing.Steps != 1 {
		t.Errorf("normalize() = %+v", s.Pacing)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	want := DefaultSettings()
	want.Trace.Enabled = true
	data, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := parse(data)
	if err != nil {
		t.Fatalf("parse() failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, expected %+v", got, want)
	}
}

func TestDisplayStyle(t *testing.T) {
	d := DefaultSettings().Display
	d.Nutrient = CellStyle{Symbol: "*", Color: "orange"}
	d.Obstacle = CellStyle{Symbol: "", Color: "no-such-color"}

	tests := []struct {
		kind     sim.CellKind
		expected core.Cell
	}{
		{sim.CellOccupied, core.Cell{Rune: 'E', Color: core.ColorBrightGreen}},
		{sim.CellNutrient, core.Cell{Rune: '*', Color: core.ColorOrange}},
		{sim.CellObstacle, core.Cell{Rune: 'O', Color: core.ColorDefault}},
		{sim.CellEmpty, core.Cell{Rune: '-', Color: core.ColorGray}},
	}
	for _, tc := range tests {
		if got := d.Style(tc.kind); got != tc.expected {
			t.Errorf("Style(%v) = %+v, expected %+v", tc.kind, got, tc.expected)
		}
	}
}

func TestPacerDelay(t *testing.T) {
	cfg := PacingConfig{InitialLevel: 0, MinDelayMS: 0, MaxDelayMS: 100, Steps: 4}
	p := NewPacer(cfg)

	tests := []struct {
		name     string
		action   func()
		expected time.Duration
	}{
		{"slowest", func() {}, 100 * time.Millisecond},
		{"one step faster", p.Faster, 75 * time.Millisecond},
		{"two steps faster", p.Faster, 50 * time.Millisecond},
		{"back one", p.Slower, 75 * time.Millisecond},
		{"clamped low", func() { p.Slower(); p.Slower(); p.Slower() }, 100 * time.Millisecond},
		{"clamped high", func() { p.SetLevel(7) }, 0},
	}

	for _, tc := range tests {
		tc.action()
		if got := p.Delay(0); got != tc.expected {
			t.Errorf("%s: Delay() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestPacerProgression(t *testing.T) {
	cfg := PacingConfig{
		InitialLevel: 0.5,
		MinDelayMS:   0,
		MaxDelayMS:   200,
		Steps:        10,
		Progression:  ProgressionConfig{Type: "cycles", MaxAt: 100},
	}
	p := NewPacer(cfg)

	if !p.IsProgressive() {
		t.Fatal("expected progressive pacing")
	}

	tests := []struct {
		cycles   int
		expected float64
	}{
		{0, 0.5},
		{50, 0.75},
		{100, 1},
		{500, 1},
	}
	for _, tc := range tests {
		if got := p.Level(tc.cycles); got != tc.expected {
			t.Errorf("Level(%d) = %v, expected %v", tc.cycles, got, tc.expected)
		}
	}

	p = NewPacer(PacingConfig{InitialLevel: 0.3, Progression: ProgressionConfig{Type: "none", MaxAt: 10}})
	if p.Level(1000) != 0.3 {
		t.Errorf("non-progressive Level() = %v, expected 0.3", p.Level(1000))
	}
}
