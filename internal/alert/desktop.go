package alert

import (
	"context"

	"fyne.io/fyne/v2"
)

// DesktopNotifier shows notifications through the running fyne app.
type DesktopNotifier struct {
	app fyne.App
}

func NewDesktopNotifier(app fyne.App) *DesktopNotifier {
	return &DesktopNotifier{app: app}
}

// Permission is granted whenever an app is attached; fyne handles the
// platform prompt itself.
func (notifier *DesktopNotifier) Permission(context.Context) Permission {
	if notifier.app == nil {
		return PermissionDenied
	}
	return PermissionGranted
}

func (notifier *DesktopNotifier) Notify(_ context.Context, message Message) error {
	if notifier.app == nil {
		return ErrPermissionDenied
	}
	notification := fyne.NewNotification(message.Title, message.Body)
	fyne.Do(func() {
		notifier.app.SendNotification(notification)
	})
	return nil
}
