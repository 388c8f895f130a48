package engine

import "github.com/lixenwraith/antcolony/parameter"

// Config holds simulation-wide settings
type Config struct {
	// World bounds; units are clamped inside, projectiles leaving them are removed
	Width  float64
	Height float64

	// Seed drives the single deterministic random source
	Seed uint64

	// MaxFlushRounds bounds the end-of-tick command flush
	MaxFlushRounds int
}

// DefaultConfig returns the standard arena
func DefaultConfig() Config {
	return Config{
		Width:          parameter.WorldWidth,
		Height:         parameter.WorldHeight,
		Seed:           1,
		MaxFlushRounds: parameter.MaxFlushRounds,
	}
}

func (c *Config) normalize() {
	if c.Width <= 0 {
		c.Width = parameter.WorldWidth
	}
	if c.Height <= 0 {
		c.Height = parameter.WorldHeight
	}
	if c.MaxFlushRounds <= 0 {
		c.MaxFlushRounds = parameter.MaxFlushRounds
	}
}
