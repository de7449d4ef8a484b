package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second, drives the game clock
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState

	// Finished is set on the single tick where the game ended.
	Finished bool
}
