package session

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventTick           EventType = "tick"
	EventPeriodComplete EventType = "period_complete"
	EventSettingsChange EventType = "settings_change"
)

// Event represents a controller update for observers.
type Event struct {
	Type  EventType
	State State
	// Config is the configuration in force when the event was emitted.
	Config model.Config
	// Completed is the mode that just ended; set on EventPeriodComplete.
	Completed model.Mode
	At        time.Time
}
