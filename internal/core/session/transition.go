package session

import "pomodoro/internal/core/model"

// NextMode decides which period follows current once its countdown hits
// zero. A finished focus period bumps the completed count; every
// interval-th completion earns a long break. Breaks always return to focus.
func NextMode(current model.Mode, completed, interval int) (model.Mode, int) {
	if current.IsBreak() {
		return model.ModeFocus, completed
	}
	if interval < 1 {
		interval = 1
	}
	completed++
	if completed%interval == 0 {
		return model.ModeLongBreak, completed
	}
	return model.ModeShortBreak, completed
}

// advance moves state into the period after the current one using the
// configuration in force right now and marks it running.
func advance(state State, config model.Config) State {
	state.Mode, state.CompletedFocusSessions = NextMode(state.Mode, state.CompletedFocusSessions, config.Interval())
	state.PeriodSeconds = config.TotalSeconds(state.Mode)
	state.RemainingSeconds = state.PeriodSeconds
	state.IsRunning = true
	state.HasStarted = true
	return state
}
