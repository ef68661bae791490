package present

import (
	"fmt"
	"image/color"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
)

// FormatClock renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Dots returns one entry per focus period in the long-break cycle, true
// for those already completed in the current cycle.
func Dots(completed, interval int) []bool {
	if interval < 1 {
		interval = 1
	}
	filled := completed % interval
	dots := make([]bool, interval)
	for i := range dots {
		dots[i] = i < filled
	}
	return dots
}

// ModeColor returns the accent colour of mode.
func ModeColor(mode model.Mode) color.NRGBA {
	switch mode {
	case model.ModeShortBreak:
		return color.NRGBA{R: 0x7F, G: 0xD8, B: 0x5C, A: 255}
	case model.ModeLongBreak:
		return color.NRGBA{R: 0x9D, G: 0x8D, B: 0xF1, A: 255}
	default:
		return color.NRGBA{R: 0x5B, G: 0x9F, B: 0xFE, A: 255}
	}
}

// ModeHex returns the accent colour of mode as #RRGGBB.
func ModeHex(mode model.Mode) string {
	accent := ModeColor(mode)
	return fmt.Sprintf("#%02X%02X%02X", accent.R, accent.G, accent.B)
}

// ToggleLabel names the action the toggle control will perform next.
func ToggleLabel(state session.State) string {
	switch state.Phase() {
	case session.PhaseRunning:
		return "Pause"
	case session.PhasePaused:
		return "Resume"
	default:
		return "Start"
	}
}

// Status is the one-line summary used by the tray and the terminal title.
func Status(state session.State) string {
	status := fmt.Sprintf("%s %s", state.Mode.Title(), FormatClock(state.RemainingSeconds))
	if state.Phase() == session.PhasePaused {
		status += " (paused)"
	}
	return status
}
