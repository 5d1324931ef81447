package core

// DefaultTickRate is the simulation rate the engine tuning assumes.
const DefaultTickRate = 60

// RuntimeConfig is what the host tells a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Simulation ticks per second
	Seed     int64 // Particle RNG seed; 0 lets the host pick one
}

// DefaultConfig returns an 80x24 config at DefaultTickRate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// WithDefaults fills zero or negative size and tick rate from
// DefaultConfig. Seed is left alone.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	d := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = d.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = d.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	return c
}

// GameState is the host-visible summary of a run.
type GameState struct {
	Score    int
	Level    int  // 1-based campaign level, 0 for custom levels
	GameOver bool // Run ended, won or lost
	Won      bool // Last campaign level cleared
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
