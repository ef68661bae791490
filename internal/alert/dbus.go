package alert

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"
)

// DBusNotifier sends freedesktop notifications on the session bus.
// Permission is granted when a notification server owns the bus name or
// is activatable.
type DBusNotifier struct {
	appName string
	icon    string

	mu       sync.Mutex
	conn     *dbus.Conn
	lastID   uint32
	dialErr  error
	attempts int
}

// NewDBusNotifier returns a notifier that connects lazily.
func NewDBusNotifier(appName, icon string) *DBusNotifier {
	return &DBusNotifier{appName: appName, icon: icon}
}

// Permission reports whether a notification server is running or can be
// started by the bus on first use.
func (notifier *DBusNotifier) Permission(ctx context.Context) Permission {
	conn, err := notifier.connection()
	if err != nil {
		return PermissionDenied
	}

	bus := conn.BusObject()
	var owned bool
	if call := bus.CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, notificationsService); call.Err == nil {
		_ = call.Store(&owned)
	}
	var activatable []string
	if !owned {
		if call := bus.CallWithContext(ctx, "org.freedesktop.DBus.ListActivatableNames", 0); call.Err == nil {
			_ = call.Store(&activatable)
		}
	}
	return serverPermission(owned, activatable)
}

func serverPermission(owned bool, activatable []string) Permission {
	if owned || slices.Contains(activatable, notificationsService) {
		return PermissionGranted
	}
	return PermissionDenied
}

// Notify shows message, replacing the previous notification with the same tag.
func (notifier *DBusNotifier) Notify(ctx context.Context, message Message) error {
	conn, err := notifier.connection()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	notifier.mu.Lock()
	replaces := notifier.lastID
	notifier.mu.Unlock()

	obj := conn.Object(notificationsService, dbus.ObjectPath(notificationsPath))
	call := obj.CallWithContext(ctx, notificationsInterface+".Notify", 0,
		notifier.appName,
		replaces,
		notifier.icon,
		message.Title,
		message.Body,
		[]string{},
		map[string]dbus.Variant{
			"urgency":        dbus.MakeVariant(byte(1)),
			"x-pomodoro-tag": dbus.MakeVariant(message.Tag),
		},
		int32(-1),
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err == nil {
		notifier.mu.Lock()
		notifier.lastID = id
		notifier.mu.Unlock()
	}
	return nil
}

// Close releases the bus connection.
func (notifier *DBusNotifier) Close() error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.conn == nil {
		return nil
	}
	err := notifier.conn.Close()
	notifier.conn = nil
	return err
}

func (notifier *DBusNotifier) connection() (*dbus.Conn, error) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.conn != nil {
		return notifier.conn, nil
	}
	if notifier.dialErr != nil && notifier.attempts >= 3 {
		return nil, notifier.dialErr
	}

	notifier.attempts++
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		notifier.dialErr = fmt.Errorf("connect session bus: %w", err)
		return nil, notifier.dialErr
	}
	notifier.conn = conn
	notifier.dialErr = nil
	return conn, nil
}
