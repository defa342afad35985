package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for lifecycle calls not allowed from the current state
var ErrInvalidTransition = errors.New("invalid state transition")

// State is the run lifecycle
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// transitions lists the legal edges; GameOver has none
var transitions = map[State][]State{
	StateIdle:    {StateRunning},
	StateRunning: {StatePaused, StateGameOver},
	StatePaused:  {StateRunning, StateGameOver},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transitionError(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
