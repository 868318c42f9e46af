package core

// RuntimeConfig contains configuration passed to the game host at startup.
// The host uses this to size the terminal view and for deterministic simulation.
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

// Outcome reports how a run ended during a simulation step.
type Outcome int

const (
	OutcomeNone Outcome = iota // Run still in progress
	OutcomeWon                 // Level completed
	OutcomeLost                // Last life lost
)

// String returns a stable name for the outcome, used in storage.
func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// StepResult is returned by Update after each simulation tick.
type StepResult struct {
	Outcome Outcome
}
