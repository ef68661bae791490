package alert

import (
	"context"
	"errors"

	"pomodoro/internal/core/model"
)

// ErrPermissionDenied indicates notifications cannot be shown. Callers
// treat it as the feature being off.
var ErrPermissionDenied = errors.New("notification permission denied")

// Permission mirrors the grant state of a notification backend.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Message is the text of a completion notification.
type Message struct {
	Title string
	Body  string
	// Tag lets a backend replace the previous notification instead of stacking.
	Tag string
}

// NotificationTag groups every notification the timer sends.
const NotificationTag = "pomodoro-timer"

// MessageFor returns the notification for the mode that just ended.
func MessageFor(ended model.Mode) Message {
	message := Message{Tag: NotificationTag}
	switch ended {
	case model.ModeShortBreak:
		message.Title = "☕ Short Break Over!"
		message.Body = "Ready to get back to work? Let's stay focused!"
	case model.ModeLongBreak:
		message.Title = "🌟 Long Break Complete!"
		message.Body = "You've earned it! Ready for another productive session?"
	default:
		message.Title = "🎯 Focus Session Complete!"
		message.Body = "Great work! Time for a break to recharge."
	}
	return message
}

// Notifier shows system notifications.
type Notifier interface {
	Permission(ctx context.Context) Permission
	Notify(ctx context.Context, message Message) error
}

// Player plays the completion cue.
type Player interface {
	Play(ctx context.Context) error
}

// NopNotifier never shows anything and reports permission as denied.
type NopNotifier struct{}

func (NopNotifier) Permission(context.Context) Permission { return PermissionDenied }

func (NopNotifier) Notify(context.Context, Message) error { return ErrPermissionDenied }

// NopPlayer is silent.
type NopPlayer struct{}

func (NopPlayer) Play(context.Context) error { return nil }
