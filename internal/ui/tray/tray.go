package tray

import (
	"fmt"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/ui/present"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
)

// App is the system tray surface of a desktop fyne.App.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. Its methods must run on the UI
// goroutine.
type Manager struct {
	app        App
	callbacks  Callbacks
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem

	// icon state last handed to the tray; iconSet is false until the first Update
	iconSet     bool
	iconMode    model.Mode
	iconRunning bool
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", func() { call(manager.callbacks.OnToggle) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) })
	manager.stopItem = fyne.NewMenuItem("Stop", func() { call(manager.callbacks.OnStop) })
	manager.stopItem.Disabled = true
	manager.menu = fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItem("Show Timer", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)

	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
	return manager
}

// Update mirrors state in the status line, the menu labels and the icon.
// The tray menu is only reinstalled when an action item changes; a tick
// that only moves the countdown refreshes the status line in place.
func (manager *Manager) Update(state session.State) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", present.Status(state))

	toggle := present.ToggleLabel(state)
	stopDisabled := !state.HasStarted
	actionsChanged := toggle != manager.toggleItem.Label || stopDisabled != manager.stopItem.Disabled
	manager.toggleItem.Label = toggle
	manager.stopItem.Disabled = stopDisabled

	if manager.app == nil {
		return
	}
	if !manager.iconSet || state.Mode != manager.iconMode || state.IsRunning != manager.iconRunning {
		manager.app.SetSystemTrayIcon(resources.TrayIcon(state.Mode, state.IsRunning))
		manager.iconSet = true
		manager.iconMode = state.Mode
		manager.iconRunning = state.IsRunning
	}
	if actionsChanged {
		manager.app.SetSystemTrayMenu(manager.menu)
		return
	}
	manager.menu.Refresh()
}

// Menu returns the items currently shown.
func (manager *Manager) Menu() []*fyne.MenuItem {
	return manager.menu.Items
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
