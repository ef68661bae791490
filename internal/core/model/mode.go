package model

import "fmt"

// Mode is the current phase of the pomodoro cycle.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Modes lists every mode in cycle order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// IsBreak reports whether mode is one of the break modes.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Label returns the short upper-case caption shown above the clock.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "BREAK"
	case ModeLongBreak:
		return "REST"
	default:
		return "FOCUS"
	}
}

// Title returns a human readable name.
func (mode Mode) Title() string {
	switch mode {
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}

// ParseMode converts a serialised mode name.
func ParseMode(value string) (Mode, error) {
	for _, mode := range Modes {
		if string(mode) == value {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", value)
}
