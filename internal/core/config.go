package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second of the UI loop (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform needs after each step.
type GameState struct {
	Score         int  // Score of the current level
	Level         int  // Current level, 1-indexed
	LevelComplete bool // Current level ended, waiting for Next
	GameOver      bool // Every level has been played
	Paused        bool
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	Quit  bool // The game asked to end the session
}
