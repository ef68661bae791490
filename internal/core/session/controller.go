package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/schedule"

	"github.com/google/uuid"
)

// ConfigStore loads and saves the persisted configuration. Load returns
// a usable configuration even when it also returns an error.
type ConfigStore interface {
	Load(ctx context.Context) (model.Config, error)
	Save(ctx context.Context, config model.Config) error
}

// Options contains runtime options for Controller.
type Options struct {
	TickInterval time.Duration
	Logger       *slog.Logger
	NewSessionID func() string
	Now          func() time.Time
}

// Controller is the pomodoro state machine. Every exported method runs
// under one mutex, and the scheduler callback is the only caller of
// onTick.
type Controller struct {
	mu         sync.Mutex
	saveMu     sync.Mutex
	store      ConfigStore
	scheduler  schedule.Scheduler
	options    Options
	logger     *slog.Logger
	config     model.Config
	state      State
	timer      schedule.Handle
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates a Controller in the idle state using the configuration
// held by store.
func New(store ConfigStore, scheduler schedule.Scheduler, options Options) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.NewSessionID == nil {
		options.NewSessionID = uuid.NewString
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	config, err := store.Load(context.Background())
	if err != nil {
		options.Logger.Warn("using default settings", "error", err)
	}
	if !config.Valid() {
		config = model.DefaultConfig()
	}

	return &Controller{
		store:     store,
		scheduler: scheduler,
		options:   options,
		logger:    options.Logger,
		config:    config,
		state:     initialState(config),
	}
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	return ch
}

// Snapshot returns the current state and configuration.
func (controller *Controller) Snapshot() (State, model.Config) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state, controller.config
}

// State returns the current session state.
func (controller *Controller) State() State {
	state, _ := controller.Snapshot()
	return state
}

// Config returns the configuration in force.
func (controller *Controller) Config() model.Config {
	_, config := controller.Snapshot()
	return config
}

// Toggle starts an idle session, pauses a running one or resumes a
// paused one.
func (controller *Controller) Toggle() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return
	}

	switch controller.state.Phase() {
	case PhaseIdle:
		controller.state.HasStarted = true
		controller.state.IsRunning = true
		controller.state.SessionID = controller.options.NewSessionID()
		controller.startTimerLocked()
		controller.logger.Info("session started",
			"session", controller.state.SessionID,
			"mode", controller.state.Mode,
			"remaining", controller.state.RemainingSeconds)
	case PhaseRunning:
		controller.state.IsRunning = false
		controller.stopTimerLocked()
		controller.logger.Debug("session paused",
			"session", controller.state.SessionID,
			"remaining", controller.state.RemainingSeconds)
	case PhasePaused:
		controller.state.IsRunning = true
		controller.startTimerLocked()
		controller.logger.Debug("session resumed",
			"session", controller.state.SessionID,
			"remaining", controller.state.RemainingSeconds)
	}

	controller.emitLocked(EventStateChange, "")
}

// Reset restores the full countdown of the current mode and pauses.
// A session that never started stays idle.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return
	}

	controller.stopTimerLocked()
	controller.state.IsRunning = false
	controller.state.PeriodSeconds = controller.config.TotalSeconds(controller.state.Mode)
	controller.state.RemainingSeconds = controller.state.PeriodSeconds

	controller.logger.Debug("period reset",
		"session", controller.state.SessionID,
		"mode", controller.state.Mode)
	controller.emitLocked(EventStateChange, "")
}

// Stop ends the session and returns to an idle focus period with no
// completed sessions.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return
	}

	controller.stopTimerLocked()
	if controller.state.HasStarted {
		controller.logger.Info("session stopped",
			"session", controller.state.SessionID,
			"completed", controller.state.CompletedFocusSessions)
	}
	controller.state = initialState(controller.config)
	controller.emitLocked(EventStateChange, "")
}

// UpdateSettings merges patch into the configuration and persists it.
// Only an idle controller re-derives its countdown; a started session
// keeps its countdown until the next transition or reset.
func (controller *Controller) UpdateSettings(patch model.Patch) model.Config {
	controller.saveMu.Lock()
	defer controller.saveMu.Unlock()

	controller.mu.Lock()
	if controller.closed {
		config := controller.config
		controller.mu.Unlock()
		return config
	}
	controller.config = patch.Apply(controller.config)
	if controller.state.Phase() == PhaseIdle {
		controller.state.PeriodSeconds = controller.config.TotalSeconds(controller.state.Mode)
		controller.state.RemainingSeconds = controller.state.PeriodSeconds
	}
	config := controller.config
	controller.emitLocked(EventSettingsChange, "")
	controller.mu.Unlock()

	if err := controller.store.Save(context.Background(), config); err != nil {
		controller.logger.Warn("settings not persisted", "error", err)
	}
	return config
}

// Close cancels the timer and closes every subscriber channel. The
// controller ignores all operations afterwards.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	controller.stopTimerLocked()
	controller.state.IsRunning = false
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) onTick(generation uint64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed || generation != controller.generation || !controller.state.IsRunning {
		return
	}

	before := controller.state.RemainingSeconds
	controller.state = Tick(controller.state)
	if controller.state.RemainingSeconds == before {
		return
	}
	if controller.state.RemainingSeconds > 0 {
		controller.emitLocked(EventTick, "")
		return
	}

	ended := controller.state.Mode
	controller.state = advance(controller.state, controller.config)
	// Restart so the new period gets a full first second.
	controller.startTimerLocked()

	controller.logger.Info("period complete",
		"session", controller.state.SessionID,
		"ended", ended,
		"next", controller.state.Mode,
		"completed", controller.state.CompletedFocusSessions)
	controller.emitLocked(EventPeriodComplete, ended)
	controller.emitLocked(EventStateChange, "")
}

// startTimerLocked cancels any live timer before starting a new one so
// at most one ticks at a time.
func (controller *Controller) startTimerLocked() {
	controller.stopTimerLocked()
	generation := controller.generation
	controller.timer = controller.scheduler.StartRepeating(func() {
		controller.onTick(generation)
	}, controller.options.TickInterval)
}

func (controller *Controller) stopTimerLocked() {
	controller.generation++
	if controller.timer != nil {
		controller.timer.Cancel()
		controller.timer = nil
	}
}

func (controller *Controller) emitLocked(eventType EventType, completed model.Mode) {
	event := Event{
		Type:      eventType,
		State:     controller.state,
		Config:    controller.config,
		Completed: completed,
		At:        controller.options.Now(),
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
