package display

import (
	"context"
	"fmt"
	"image/color"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/ui/present"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controller is the part of the session controller the timer window drives.
type Controller interface {
	Toggle()
	Reset()
	Stop()
	Snapshot() (session.State, model.Config)
}

// Window is the main timer window.
type Window struct {
	window         fyne.Window
	controller     Controller
	background     *canvas.Rectangle
	modeLabel      *canvas.Text
	clock          *canvas.Text
	progress       *widget.ProgressBar
	dots           *fyne.Container
	toggleButton   *widget.Button
	resetButton    *widget.Button
	stopButton     *widget.Button
	settingsButton *widget.Button
	confirm        dialog.Dialog
	onSettings     func()
	state          session.State
	config         model.Config
}

const (
	defaultWidth  = float32(320)
	defaultHeight = float32(360)
	dotSize       = float32(12)
)

var textColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// New creates the timer window. onSettings is invoked by the settings
// button.
func New(app fyne.App, controller Controller, onSettings func()) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	modeLabel := canvas.NewText("FOCUS", textColor)
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	modeLabel.TextSize = 16

	clock := canvas.NewText("--:--", textColor)
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Monospace: true}
	clock.TextSize = 64

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	timer := &Window{
		window:     window,
		controller: controller,
		background: canvas.NewRectangle(present.ModeColor(model.ModeFocus)),
		modeLabel:  modeLabel,
		clock:      clock,
		progress:   progress,
		dots:       container.NewGridWrap(fyne.NewSize(dotSize, dotSize)),
		onSettings: onSettings,
	}

	timer.toggleButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), controller.Toggle)
	timer.toggleButton.Importance = widget.HighImportance
	timer.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), controller.Reset)
	timer.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), timer.ConfirmStop)
	timer.settingsButton = widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if timer.onSettings != nil {
			timer.onSettings()
		}
	})

	buttons := container.NewGridWithColumns(4, timer.toggleButton, timer.resetButton, timer.stopButton, timer.settingsButton)
	content := container.New(&timerLayout{}, modeLabel, clock, progress, container.NewCenter(timer.dots), buttons)
	window.SetContent(container.NewStack(timer.background, content))
	window.Canvas().SetOnTypedKey(timer.handleKey)
	window.Resize(fyne.NewSize(defaultWidth, defaultHeight))
	window.CenterOnScreen()

	state, config := controller.Snapshot()
	timer.Render(state, config)
	return timer
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// ShowAndRun displays the window and runs the application loop.
func (timer *Window) ShowAndRun() {
	timer.window.ShowAndRun()
}

// HideOnClose keeps the application alive when the window is closed.
func (timer *Window) HideOnClose() {
	timer.window.SetCloseIntercept(timer.window.Hide)
}

// Watch renders every event until events is closed or ctx is done.
func (timer *Window) Watch(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fyne.Do(func() {
				timer.Render(event.State, event.Config)
			})
		}
	}
}

// Render updates every widget from state. Must run on the UI goroutine.
func (timer *Window) Render(state session.State, config model.Config) {
	intervalChanged := config.Interval() != timer.config.Interval() || len(timer.dots.Objects) == 0
	timer.state = state
	timer.config = config

	accent := present.ModeColor(state.Mode)
	timer.background.FillColor = accent
	timer.background.Refresh()

	timer.modeLabel.Text = state.Mode.Label()
	timer.modeLabel.Refresh()
	timer.clock.Text = present.FormatClock(state.RemainingSeconds)
	timer.clock.Refresh()
	timer.progress.SetValue(state.Progress())

	if intervalChanged {
		timer.dots.Objects = make([]fyne.CanvasObject, config.Interval())
		for i := range timer.dots.Objects {
			timer.dots.Objects[i] = canvas.NewCircle(color.Transparent)
		}
	}
	for i, filled := range present.Dots(state.CompletedFocusSessions, config.Interval()) {
		dot := timer.dots.Objects[i].(*canvas.Circle)
		dot.StrokeColor = textColor
		dot.StrokeWidth = 2
		dot.FillColor = color.Transparent
		if filled {
			dot.FillColor = textColor
		}
	}
	timer.dots.Refresh()

	timer.toggleButton.SetText(present.ToggleLabel(state))
	if state.IsRunning {
		timer.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		timer.toggleButton.SetIcon(theme.MediaPlayIcon())
	}
	if state.HasStarted {
		timer.stopButton.Enable()
	} else {
		timer.stopButton.Disable()
	}

	timer.window.SetTitle(fmt.Sprintf("%s · Pomodoro", present.Status(state)))
}

// ConfirmStop asks before ending a started session.
func (timer *Window) ConfirmStop() {
	if !timer.state.HasStarted || timer.confirm != nil {
		return
	}
	confirm := dialog.NewConfirm("Stop session", "End this session and reset your progress?", func(ok bool) {
		if ok {
			timer.controller.Stop()
		}
	}, timer.window)
	confirm.SetDismissText("Keep going")
	confirm.SetConfirmText("Stop")
	confirm.SetOnClosed(func() {
		timer.confirm = nil
	})
	timer.confirm = confirm
	confirm.Show()
}

func (timer *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape:
		if timer.confirm != nil {
			timer.confirm.Hide()
		}
	case fyne.KeySpace:
		if timer.confirm == nil {
			timer.controller.Toggle()
		}
	case fyne.KeyR:
		if timer.confirm == nil {
			timer.controller.Reset()
		}
	case fyne.KeyS:
		timer.ConfirmStop()
	}
}

// timerLayout stacks the mode label, clock, progress bar, dots and
// buttons vertically. Text rows are centred at their minimum size and the
// bar and buttons take the full width.
type timerLayout struct{}

func (layout *timerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	label := objects[0]
	clock := objects[1]
	bar := objects[2]
	dots := objects[3]
	buttons := objects[4]

	pad := size.Height * 0.06
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	y := pad
	for _, object := range []fyne.CanvasObject{label, clock} {
		objectSize := object.MinSize()
		object.Move(fyne.NewPos(pad, y))
		object.Resize(fyne.NewSize(availableWidth, objectSize.Height))
		y += objectSize.Height + 6
	}

	barSize := bar.MinSize()
	bar.Move(fyne.NewPos(pad, y+4))
	bar.Resize(fyne.NewSize(availableWidth, barSize.Height))
	y += barSize.Height + 16

	dotsSize := dots.MinSize()
	dots.Move(fyne.NewPos(pad, y))
	dots.Resize(fyne.NewSize(availableWidth, dotsSize.Height))

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < y+dotsSize.Height {
		buttonsY = y + dotsSize.Height
	}
	buttons.Move(fyne.NewPos(pad, buttonsY))
	buttons.Resize(fyne.NewSize(availableWidth, buttonsSize.Height))
}

func (layout *timerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 5 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(0)
	for _, object := range objects[:5] {
		objectSize := object.MinSize()
		if objectSize.Width > width {
			width = objectSize.Width
		}
		height += objectSize.Height
	}
	return fyne.NewSize(width+40, height+60)
}
