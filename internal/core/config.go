package core

import "time"

// RuntimeConfig carries front-end parameters for one interactive run.
type RuntimeConfig struct {
	ScreenW int           // terminal width in characters
	ScreenH int           // terminal height in characters
	Seed    int64         // random seed; 0 means derive one from the clock
	Delay   time.Duration // pause between rendered cycles
}

// DefaultConfig returns an 80x24 terminal with a time-derived seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Delay:   100 * time.Millisecond,
	}
}

// ResolveSeed fills in a clock-derived seed when none was given and returns it.
func (c *RuntimeConfig) ResolveSeed() int64 {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c.Seed
}
