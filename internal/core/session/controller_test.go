package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	config  model.Config
	loadErr error
	saveErr error
	saved   []model.Config
}

func (store *fakeStore) Load(context.Context) (model.Config, error) {
	return store.config, store.loadErr
}

func (store *fakeStore) Save(_ context.Context, config model.Config) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.saved = append(store.saved, config)
	return store.saveErr
}

func newTestController(t *testing.T, config model.Config) (*Controller, *schedule.Manual, *fakeStore) {
	t.Helper()
	store := &fakeStore{config: config}
	manual := schedule.NewManual()
	controller := New(store, manual, Options{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewSessionID: func() string { return "sess-1" },
	})
	t.Cleanup(controller.Close)
	return controller, manual, store
}

func testConfig(focus, short, long, interval int) model.Config {
	config := model.DefaultConfig()
	config.FocusMinutes = focus
	config.ShortBreakMinutes = short
	config.LongBreakMinutes = long
	config.LongBreakInterval = interval
	return config
}

func TestNewStartsIdleInFocus(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	state := controller.State()
	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.Equal(t, 1500, state.PeriodSeconds)
	assert.False(t, state.IsRunning)
	assert.False(t, state.HasStarted)
	assert.Zero(t, state.CompletedFocusSessions)
	assert.Equal(t, PhaseIdle, state.Phase())
	assert.Zero(t, manual.Active())
}

func TestNewFallsBackToDefaultsOnInvalidConfig(t *testing.T) {
	controller, _, _ := newTestController(t, model.Config{FocusMinutes: 10})

	assert.Equal(t, model.DefaultConfig(), controller.Config())
	assert.Equal(t, 25*60, controller.State().RemainingSeconds)
}

func TestNewKeepsLoadedConfigWhenStoreReportsError(t *testing.T) {
	store := &fakeStore{config: testConfig(30, 5, 15, 4), loadErr: errors.New("boom")}
	controller := New(store, schedule.NewManual(), Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	defer controller.Close()

	assert.Equal(t, 30*60, controller.State().RemainingSeconds)
}

func TestFullFocusPeriodTransitionsToShortBreak(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Toggle()
	manual.Advance(1500)

	state := controller.State()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 300, state.RemainingSeconds)
	assert.Equal(t, 1, state.CompletedFocusSessions)
	assert.True(t, state.IsRunning)
	assert.True(t, state.HasStarted)
	assert.Equal(t, 1, manual.Active())
}

func TestLongBreakEveryIntervalCompletions(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(1, 1, 2, 4))
	controller.Toggle()

	for completion := 1; completion <= 12; completion++ {
		manual.Advance(60)
		state := controller.State()
		require.Equal(t, completion, state.CompletedFocusSessions)
		if completion%4 == 0 {
			require.Equal(t, model.ModeLongBreak, state.Mode, "completion %d", completion)
			manual.Advance(120)
		} else {
			require.Equal(t, model.ModeShortBreak, state.Mode, "completion %d", completion)
			manual.Advance(60)
		}
		require.Equal(t, model.ModeFocus, controller.State().Mode)
		require.True(t, controller.State().IsRunning)
	}
}

func TestIntervalOfOneAlwaysGivesLongBreak(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(1, 1, 1, 1))
	controller.Toggle()

	manual.Advance(60)
	assert.Equal(t, model.ModeLongBreak, controller.State().Mode)
}

func TestToggleTwicePausesWithoutLosingTime(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Toggle()
	manual.Advance(10)
	controller.Toggle()

	paused := controller.State()
	assert.Equal(t, PhasePaused, paused.Phase())
	assert.Equal(t, 1490, paused.RemainingSeconds)
	assert.Zero(t, manual.Active())

	manual.Advance(30)
	assert.Equal(t, 1490, controller.State().RemainingSeconds)

	controller.Toggle()
	assert.Equal(t, PhaseRunning, controller.State().Phase())
	assert.Equal(t, 1490, controller.State().RemainingSeconds)
	manual.Advance(1)
	assert.Equal(t, 1489, controller.State().RemainingSeconds)
}

func TestAtMostOneTimerIsLive(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(1, 1, 1, 2))

	for i := 0; i < 5; i++ {
		controller.Toggle()
		assert.LessOrEqual(t, manual.Active(), 1)
	}
	manual.Advance(200)
	assert.Equal(t, 1, manual.Active())
	controller.Reset()
	assert.Zero(t, manual.Active())
}

func TestStaleTickAfterPauseIsIgnored(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Toggle()
	first := manual.Timers()[0]
	controller.Toggle()
	controller.Toggle()

	first.FireStale()
	assert.Equal(t, 1500, controller.State().RemainingSeconds)

	manual.Fire()
	assert.Equal(t, 1499, controller.State().RemainingSeconds)
}

func TestResetRestoresFullDuration(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Reset()
	assert.Equal(t, PhaseIdle, controller.State().Phase())
	assert.Equal(t, 1500, controller.State().RemainingSeconds)

	controller.Toggle()
	manual.Advance(1500 + 42)
	controller.Reset()

	state := controller.State()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 300, state.RemainingSeconds)
	assert.Equal(t, PhasePaused, state.Phase())
	assert.Equal(t, 1, state.CompletedFocusSessions)
	assert.Zero(t, manual.Active())
}

func TestResetPicksUpSettingsChangedMidSession(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Toggle()
	manual.Advance(5)
	controller.UpdateSettings(model.Patch{FocusMinutes: model.Int(30)})
	assert.Equal(t, 1495, controller.State().RemainingSeconds)

	controller.Reset()
	assert.Equal(t, 1800, controller.State().RemainingSeconds)
	assert.Equal(t, 1800, controller.State().PeriodSeconds)
}

func TestStopReinitialisesFromAnyState(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(2, 1, 3, 2))

	controller.Toggle()
	manual.Advance(120 + 60 + 120 + 7)
	require.Equal(t, model.ModeLongBreak, controller.State().Mode)

	controller.Stop()

	state := controller.State()
	assert.Equal(t, State{
		Mode:             model.ModeFocus,
		RemainingSeconds: 120,
		PeriodSeconds:    120,
	}, state)
	assert.Zero(t, manual.Active())

	controller.Toggle()
	controller.Toggle()
	controller.Stop()
	assert.Equal(t, PhaseIdle, controller.State().Phase())
}

func TestUpdateSettingsWhileIdleRecomputesCountdown(t *testing.T) {
	controller, _, store := newTestController(t, testConfig(25, 5, 15, 4))

	config := controller.UpdateSettings(model.Patch{FocusMinutes: model.Int(30)})

	assert.Equal(t, 30, config.FocusMinutes)
	assert.Equal(t, 1800, controller.State().RemainingSeconds)
	require.Len(t, store.saved, 1)
	assert.Equal(t, 30, store.saved[0].FocusMinutes)
	assert.Equal(t, 5, store.saved[0].ShortBreakMinutes)
}

func TestUpdateSettingsWhileRunningAppliesAtNextTransition(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Toggle()
	manual.Advance(100)
	controller.UpdateSettings(model.Patch{FocusMinutes: model.Int(30), ShortBreakMinutes: model.Int(7)})
	assert.Equal(t, 1400, controller.State().RemainingSeconds)
	assert.Equal(t, 1500, controller.State().PeriodSeconds)

	manual.Advance(1400)
	state := controller.State()
	assert.Equal(t, model.ModeShortBreak, state.Mode)
	assert.Equal(t, 7*60, state.RemainingSeconds)

	manual.Advance(7 * 60)
	assert.Equal(t, 1800, controller.State().RemainingSeconds)
}

func TestUpdateSettingsWhilePausedLeavesCountdown(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))

	controller.Toggle()
	manual.Advance(3)
	controller.Toggle()
	controller.UpdateSettings(model.Patch{FocusMinutes: model.Int(10)})

	assert.Equal(t, 1497, controller.State().RemainingSeconds)
}

func TestIntervalChangeAppliesAtTransitionBoundary(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(1, 1, 1, 4))

	controller.Toggle()
	manual.Advance(30)
	controller.UpdateSettings(model.Patch{LongBreakInterval: model.Int(1)})
	manual.Advance(30)

	assert.Equal(t, model.ModeLongBreak, controller.State().Mode)
}

func TestUpdateSettingsIgnoresNonPositiveValues(t *testing.T) {
	controller, _, _ := newTestController(t, testConfig(25, 5, 15, 4))

	config := controller.UpdateSettings(model.Patch{FocusMinutes: model.Int(0), LongBreakInterval: model.Int(-2)})

	assert.Equal(t, 25, config.FocusMinutes)
	assert.Equal(t, 4, config.LongBreakInterval)
}

func TestUpdateSettingsIgnoresOversizedValues(t *testing.T) {
	controller, _, store := newTestController(t, testConfig(25, 5, 15, 4))

	config := controller.UpdateSettings(model.Patch{
		FocusMinutes:      model.Int(math.MaxInt64 / 10),
		ShortBreakMinutes: model.Int(model.MaxValue + 1),
		LongBreakMinutes:  model.Int(model.MaxValue),
	})

	assert.Equal(t, 25, config.FocusMinutes)
	assert.Equal(t, 5, config.ShortBreakMinutes)
	assert.Equal(t, model.MaxValue, config.LongBreakMinutes)
	state := controller.State()
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.Equal(t, 1500, state.PeriodSeconds)
	require.NotEmpty(t, store.saved)
	assert.True(t, store.saved[len(store.saved)-1].Valid())
}

func TestSaveFailureKeepsInMemoryConfig(t *testing.T) {
	controller, _, store := newTestController(t, testConfig(25, 5, 15, 4))
	store.saveErr = errors.New("disk full")

	controller.UpdateSettings(model.Patch{SoundEnabled: model.Bool(false)})

	assert.False(t, controller.Config().SoundEnabled)
}

func TestEventsAreEmittedForOperations(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(1, 1, 1, 4))
	events := controller.Subscribe(256)

	controller.Toggle()
	manual.Advance(60)

	var types []EventType
	var completed *Event
	for len(events) > 0 {
		event := <-events
		types = append(types, event.Type)
		if event.Type == EventPeriodComplete {
			copied := event
			completed = &copied
		}
	}

	require.NotNil(t, completed)
	assert.Equal(t, model.ModeFocus, completed.Completed)
	assert.Equal(t, model.ModeShortBreak, completed.State.Mode)
	assert.True(t, completed.Config.SoundEnabled)
	assert.Equal(t, EventStateChange, types[0])
	assert.Contains(t, types, EventTick)
	assert.Equal(t, EventStateChange, types[len(types)-1])
}

func TestSessionIDLifecycle(t *testing.T) {
	controller, _, _ := newTestController(t, testConfig(25, 5, 15, 4))

	assert.Empty(t, controller.State().SessionID)
	controller.Toggle()
	assert.Equal(t, "sess-1", controller.State().SessionID)
	controller.Toggle()
	assert.Equal(t, "sess-1", controller.State().SessionID)
	controller.Stop()
	assert.Empty(t, controller.State().SessionID)
}

func TestCloseClosesSubscribersAndIgnoresOperations(t *testing.T) {
	controller, manual, _ := newTestController(t, testConfig(25, 5, 15, 4))
	events := controller.Subscribe(1)

	controller.Toggle()
	<-events
	controller.Close()

	_, ok := <-events
	assert.False(t, ok)
	assert.Zero(t, manual.Active())

	controller.Toggle()
	assert.False(t, controller.State().IsRunning)

	late := controller.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}
