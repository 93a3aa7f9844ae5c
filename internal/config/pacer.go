package config

import (
	"math"
	"time"

	"github.com/vovakirdan/evosim/internal/core"
)

// Pacer turns a speed level into the delay between rendered cycles. The level moves in
// discrete steps when the user presses +/- and can ramp up with the cycle count.
type Pacer struct {
	cfg   PacingConfig
	level float64
}

// NewPacer creates a pacer starting at the configured initial level.
func NewPacer(cfg PacingConfig) *Pacer {
	return &Pacer{
		cfg:   cfg,
		level: core.ClampF(cfg.InitialLevel, 0, 1),
	}
}

// SetLevel overrides the base speed level (0.0 to 1.0).
func (p *Pacer) SetLevel(level float64) {
	p.level = core.ClampF(level, 0, 1)
}

// Faster raises the base level by one step.
func (p *Pacer) Faster() {
	p.SetLevel(p.level + p.step())
}

// Slower lowers the base level by one step.
func (p *Pacer) Slower() {
	p.SetLevel(p.level - p.step())
}

func (p *Pacer) step() float64 {
	if p.cfg.Steps <= 0 {
		return 1
	}
	return 1 / float64(p.cfg.Steps)
}

// IsProgressive reports whether the speed ramps with the cycle count.
func (p *Pacer) IsProgressive() bool {
	return p.cfg.Progression.Type == "cycles"
}

// Level returns the effective speed level after cycles completed cycles.
func (p *Pacer) Level(cycles int) float64 {
	if !p.IsProgressive() {
		return p.level
	}

	maxAt := float64(p.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := core.ClampF(float64(cycles)/maxAt, 0, 1)

	// Interpolate from the base level to 1.0
	return p.level + progress*(1-p.level)
}

// Delay returns the pause before the next cycle is rendered.
func (p *Pacer) Delay(cycles int) time.Duration {
	level := p.Level(cycles)
	lo, hi := float64(p.cfg.MinDelayMS), float64(p.cfg.MaxDelayMS)
	ms := hi - level*(hi-lo)
	return time.Duration(math.Round(ms)) * time.Millisecond
}

