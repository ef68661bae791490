package preferences

import (
	"strconv"

	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	onSave        func(model.Patch)
	focus         *widget.SelectEntry
	shortBreak    *widget.SelectEntry
	longBreak     *widget.SelectEntry
	interval      *widget.SelectEntry
	notifications *widget.Check
	sound         *widget.Check
}

// New creates a preferences window. onSave receives a patch carrying
// every field of the form.
func New(app fyne.App, config model.Config, onSave func(model.Patch)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		focus:         widget.NewSelectEntry(nil),
		shortBreak:    widget.NewSelectEntry(nil),
		longBreak:     widget.NewSelectEntry(nil),
		interval:      widget.NewSelectEntry(nil),
		notifications: widget.NewCheck("Desktop notifications", nil),
		sound:         widget.NewCheck("Completion sound", nil),
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, widget.NewLabel("Focus"), prefs.focus, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Long break after"), prefs.interval, widget.NewLabel("sessions")),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		prefs.sound,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, saveButton)

	window.SetContent(container.NewPadded(container.NewBorder(nil, buttons, nil, nil, form)))
	window.Resize(fyne.NewSize(380, 340))
	window.SetCloseIntercept(window.Hide)
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeyEscape {
			window.Hide()
		}
	})

	prefs.UpdateConfig(config)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide closes the window without saving.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

// UpdateConfig replaces the form values.
func (prefs *Window) UpdateConfig(config model.Config) {
	setChoice(prefs.focus, FocusChoices, config.FocusMinutes)
	setChoice(prefs.shortBreak, ShortBreakChoices, config.ShortBreakMinutes)
	setChoice(prefs.longBreak, LongBreakChoices, config.LongBreakMinutes)
	setChoice(prefs.interval, IntervalChoices, config.LongBreakInterval)
	prefs.notifications.SetChecked(config.NotificationsEnabled)
	prefs.sound.SetChecked(config.SoundEnabled)
}

func (prefs *Window) settings() Settings {
	return Settings{
		FocusMinutes:         prefs.focus.Text,
		ShortBreakMinutes:    prefs.shortBreak.Text,
		LongBreakMinutes:     prefs.longBreak.Text,
		LongBreakInterval:    prefs.interval.Text,
		NotificationsEnabled: prefs.notifications.Checked,
		SoundEnabled:         prefs.sound.Checked,
	}
}

func (prefs *Window) handleSave() {
	patch, err := prefs.settings().Patch()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		prefs.onSave(patch)
	}
	prefs.window.Hide()
}

func setChoice(entry *widget.SelectEntry, curated []int, current int) {
	entry.SetOptions(Choices(curated, current))
	entry.SetText(strconv.Itoa(current))
}
