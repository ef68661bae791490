package session

// Tick applies one elapsed second. It only counts down while running and
// never goes below zero; reaching zero is handled by the controller.
func Tick(state State) State {
	if !state.IsRunning || state.RemainingSeconds <= 0 {
		return state
	}
	state.RemainingSeconds--
	return state
}
