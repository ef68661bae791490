package session

import (
	"testing"

	"pomodoro/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func TestNextMode(t *testing.T) {
	tests := []struct {
		name          string
		current       model.Mode
		completed     int
		interval      int
		wantMode      model.Mode
		wantCompleted int
	}{
		{"first focus", model.ModeFocus, 0, 4, model.ModeShortBreak, 1},
		{"fourth focus", model.ModeFocus, 3, 4, model.ModeLongBreak, 4},
		{"eighth focus", model.ModeFocus, 7, 4, model.ModeLongBreak, 8},
		{"fifth focus", model.ModeFocus, 4, 4, model.ModeShortBreak, 5},
		{"short break", model.ModeShortBreak, 2, 4, model.ModeFocus, 2},
		{"long break", model.ModeLongBreak, 4, 4, model.ModeFocus, 4},
		{"zero interval acts as one", model.ModeFocus, 0, 0, model.ModeLongBreak, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, completed := NextMode(tt.current, tt.completed, tt.interval)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, tt.wantCompleted, completed)
		})
	}
}

func TestTick(t *testing.T) {
	running := State{Mode: model.ModeFocus, RemainingSeconds: 2, PeriodSeconds: 60, IsRunning: true, HasStarted: true}

	assert.Equal(t, 1, Tick(running).RemainingSeconds)

	paused := running
	paused.IsRunning = false
	assert.Equal(t, 2, Tick(paused).RemainingSeconds)

	done := running
	done.RemainingSeconds = 0
	assert.Equal(t, 0, Tick(done).RemainingSeconds)
}

func TestTotalSecondsMatchesMinutes(t *testing.T) {
	config := testConfig(25, 5, 15, 4)
	for _, mode := range model.Modes {
		assert.Equal(t, config.Minutes(mode)*60, config.TotalSeconds(mode))
	}
}

func TestStateProgress(t *testing.T) {
	assert.Equal(t, 0.5, State{RemainingSeconds: 30, PeriodSeconds: 60}.Progress())
	assert.Equal(t, 0.0, State{}.Progress())
	assert.Equal(t, 1.0, State{RemainingSeconds: 90, PeriodSeconds: 60}.Progress())
}
