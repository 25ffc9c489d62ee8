package core

// RuntimeConfig is passed to games at initialization.
// Games use it to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Target frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means the platform layer seeds from the clock
	}
}

// GameStatus is what a game reports back to the platform after updates.
// The platform uses it to drive session state transitions and score saving.
type GameStatus struct {
	Score   int  // Current score
	Over    bool // Game lost
	Victory bool // Game won
}
