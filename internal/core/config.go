package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Busy     bool // An animation is playing; input is dropped

	// Moves is the remaining move budget, or -1 when the mode has none.
	Moves int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Changed is false when the tick neither consumed input nor advanced an
	// animation, letting the platform skip a redraw.
	Changed bool
}

// GameSummary describes a finished game for score records.
// Games that can report more than a score implement Summary() GameSummary.
type GameSummary struct {
	Score     int
	MovesUsed int
	MaxChain  int
	EndReason string
}
