package session

import "pomodoro/internal/core/model"

// Phase is the controller state derived from State.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// State is a snapshot of the session.
type State struct {
	Mode                   model.Mode
	RemainingSeconds       int
	PeriodSeconds          int
	IsRunning              bool
	HasStarted             bool
	CompletedFocusSessions int
	SessionID              string
}

// initialState returns the state of a freshly constructed or stopped
// controller.
func initialState(config model.Config) State {
	total := config.TotalSeconds(model.ModeFocus)
	return State{
		Mode:             model.ModeFocus,
		RemainingSeconds: total,
		PeriodSeconds:    total,
	}
}

// Phase derives Idle, Running or Paused.
func (state State) Phase() Phase {
	switch {
	case state.IsRunning:
		return PhaseRunning
	case state.HasStarted:
		return PhasePaused
	default:
		return PhaseIdle
	}
}

// Progress returns remaining/period in [0, 1].
func (state State) Progress() float64 {
	if state.PeriodSeconds <= 0 {
		return 0
	}
	progress := float64(state.RemainingSeconds) / float64(state.PeriodSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
