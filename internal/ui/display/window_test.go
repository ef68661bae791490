package display

import (
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	state   session.State
	config  model.Config
	toggles int
	resets  int
	stops   int
}

func (controller *fakeController) Toggle() { controller.toggles++ }
func (controller *fakeController) Reset()  { controller.resets++ }
func (controller *fakeController) Stop()   { controller.stops++ }

func (controller *fakeController) Snapshot() (session.State, model.Config) {
	return controller.state, controller.config
}

func newTestWindow(t *testing.T) (*Window, *fakeController) {
	t.Helper()
	app := test.NewTempApp(t)
	controller := &fakeController{
		state:  session.State{Mode: model.ModeFocus, RemainingSeconds: 1500, PeriodSeconds: 1500},
		config: model.DefaultConfig(),
	}
	return New(app, controller, nil), controller
}

func TestRenderShowsState(t *testing.T) {
	timer, _ := newTestWindow(t)

	timer.Render(session.State{
		Mode:                   model.ModeLongBreak,
		RemainingSeconds:       450,
		PeriodSeconds:          900,
		IsRunning:              true,
		HasStarted:             true,
		CompletedFocusSessions: 4,
	}, model.DefaultConfig())

	assert.Equal(t, "REST", timer.modeLabel.Text)
	assert.Equal(t, "07:30", timer.clock.Text)
	assert.InDelta(t, 0.5, timer.progress.Value, 1e-9)
	assert.Equal(t, "Pause", timer.toggleButton.Text)
	assert.False(t, timer.stopButton.Disabled())
	assert.Equal(t, "Long break 07:30 · Pomodoro", timer.window.Title())
	require.Len(t, timer.dots.Objects, 4)
}

func TestClockUsesThemeMonospaceFont(t *testing.T) {
	timer, _ := newTestWindow(t)

	assert.Equal(t, fyne.TextStyle{Monospace: true}, timer.clock.TextStyle)
	assert.NotPanics(t, func() {
		timer.window.Resize(fyne.NewSize(320, 240))
		timer.window.Canvas().Refresh(timer.clock)
		_ = timer.clock.MinSize()
	})
}

func TestRenderRebuildsDotsWhenIntervalChanges(t *testing.T) {
	timer, _ := newTestWindow(t)
	config := model.DefaultConfig()
	config.LongBreakInterval = 2

	timer.Render(session.State{Mode: model.ModeFocus, RemainingSeconds: 1500, PeriodSeconds: 1500, CompletedFocusSessions: 1}, config)

	require.Len(t, timer.dots.Objects, 2)
	first := timer.dots.Objects[0].(*canvas.Circle)
	second := timer.dots.Objects[1].(*canvas.Circle)
	assert.Equal(t, textColor, first.FillColor)
	assert.NotEqual(t, textColor, second.FillColor)
}

func TestKeyboardShortcuts(t *testing.T) {
	timer, controller := newTestWindow(t)

	timer.handleKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	timer.handleKey(&fyne.KeyEvent{Name: fyne.KeyR})

	assert.Equal(t, 1, controller.toggles)
	assert.Equal(t, 1, controller.resets)
}

func TestStopNeedsStartedSession(t *testing.T) {
	timer, _ := newTestWindow(t)

	timer.handleKey(&fyne.KeyEvent{Name: fyne.KeyS})
	assert.Nil(t, timer.confirm)
	assert.True(t, timer.stopButton.Disabled())
}

func TestConfirmStopOpensDialogAndEscapeCloses(t *testing.T) {
	timer, controller := newTestWindow(t)
	started := session.State{Mode: model.ModeFocus, RemainingSeconds: 1400, PeriodSeconds: 1500, HasStarted: true}
	timer.Render(started, model.DefaultConfig())

	timer.handleKey(&fyne.KeyEvent{Name: fyne.KeyS})
	require.NotNil(t, timer.confirm)

	timer.handleKey(&fyne.KeyEvent{Name: fyne.KeySpace})
	assert.Zero(t, controller.toggles)

	timer.handleKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.Nil(t, timer.confirm)
	assert.Zero(t, controller.stops)
}
