package fsm

import "github.com/charmbracelet/log"

// Standard game session states.
const (
	StateIdle     = "idle"
	StateReady    = "ready"
	StateLoading  = "loading"
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "game_over"
	StateVictory  = "victory"
)

// GameSessionStates returns the standard state set with no hooks attached.
// Callers that need hooks build their own StateDefinitions and pass them to
// NewGameSessionWith.
func GameSessionStates() []StateDefinition {
	return []StateDefinition{
		{Name: StateIdle},
		{Name: StateReady},
		{Name: StateLoading},
		{Name: StatePlaying},
		{Name: StatePaused},
		{Name: StateGameOver},
		{Name: StateVictory},
	}
}

// GameSessionTransitions returns the default legality table for a game
// session. Notably there is no direct idle -> playing edge: a session must
// pass through ready (and optionally loading) first.
func GameSessionTransitions() []TransitionDefinition {
	return []TransitionDefinition{
		{From: StateIdle, To: StateReady},
		{From: StateIdle, To: StateLoading},
		{From: StateReady, To: StateLoading},
		{From: StateReady, To: StatePlaying},
		{From: StateLoading, To: StateReady},
		{From: StateLoading, To: StatePlaying},
		{From: StatePlaying, To: StatePaused},
		{From: StatePlaying, To: StateGameOver},
		{From: StatePlaying, To: StateVictory},
		{From: StatePaused, To: StatePlaying},
		{From: StatePaused, To: StateReady},
		{From: StatePaused, To: StateIdle},
		{From: StateGameOver, To: StateIdle},
		{From: StateGameOver, To: StateReady},
		{From: StateGameOver, To: StateLoading},
		{From: StateVictory, To: StateIdle},
		{From: StateVictory, To: StateReady},
		{From: StateVictory, To: StateLoading},
	}
}

// NewGameSession creates a machine preconfigured with the standard game
// session states and transition table, starting in idle.
func NewGameSession(ctx any, logger *log.Logger) (*Machine, error) {
	return New(Config{
		States:      GameSessionStates(),
		Transitions: GameSessionTransitions(),
		Initial:     StateIdle,
		Context:     ctx,
		Logger:      logger,
	})
}

// NewGameSessionWith creates a standard game session but lets the caller
// supply hooked state definitions. States must use the standard names;
// unknown names are a configuration error surfaced by New.
func NewGameSessionWith(states []StateDefinition, ctx any, logger *log.Logger) (*Machine, error) {
	return New(Config{
		States:      states,
		Transitions: GameSessionTransitions(),
		Initial:     StateIdle,
		Context:     ctx,
		Logger:      logger,
	})
}
