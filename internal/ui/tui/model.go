package tui

import (
	"context"
	"fmt"
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/ui/present"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller is the part of the session controller the terminal UI drives.
type Controller interface {
	Toggle()
	Reset()
	Stop()
	UpdateSettings(patch model.Patch) model.Config
	Snapshot() (session.State, model.Config)
	Subscribe(buffer int) <-chan session.Event
}

type eventMsg session.Event

type eventsClosedMsg struct{}

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(1, 4).
			Align(lipgloss.Center)

	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")).Bold(true)
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
)

// Model is the bubbletea model of the terminal timer.
type Model struct {
	controller  Controller
	events      <-chan session.Event
	state       session.State
	config      model.Config
	keys        keyMap
	help        help.Model
	bar         progress.Model
	confirmStop bool
	width       int
}

// New builds a model subscribed to controller.
func New(controller Controller) Model {
	state, config := controller.Snapshot()
	bar := progress.New(progress.WithSolidFill(present.ModeHex(state.Mode)), progress.WithoutPercentage())
	bar.Width = 30
	return Model{
		controller: controller,
		events:     controller.Subscribe(64),
		state:      state,
		config:     config,
		keys:       defaultKeys(),
		help:       help.New(),
		bar:        bar,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.state = msg.State
		m.config = msg.Config
		m.syncBar()
		return m, waitForEvent(m.events)
	case eventsClosedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirmStop {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmStop = false
			m.controller.Stop()
		case key.Matches(msg, m.keys.Cancel):
			m.confirmStop = false
		}
		m.refresh()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.controller.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.controller.Reset()
	case key.Matches(msg, m.keys.Stop):
		if m.state.HasStarted {
			m.confirmStop = true
		}
	case key.Matches(msg, m.keys.Notifications):
		m.controller.UpdateSettings(model.Patch{NotificationsEnabled: model.Bool(!m.config.NotificationsEnabled)})
	case key.Matches(msg, m.keys.Sound):
		m.controller.UpdateSettings(model.Patch{SoundEnabled: model.Bool(!m.config.SoundEnabled)})
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.refresh()
	return m, nil
}

func (m *Model) refresh() {
	m.state, m.config = m.controller.Snapshot()
	m.syncBar()
}

func (m *Model) syncBar() {
	m.bar.FullColor = present.ModeHex(m.state.Mode)
}

// ConfirmingStop reports whether the stop confirmation prompt is open.
func (m Model) ConfirmingStop() bool {
	return m.confirmStop
}

func (m Model) View() string {
	accent := lipgloss.Color(present.ModeHex(m.state.Mode))

	var dots strings.Builder
	for i, filled := range present.Dots(m.state.CompletedFocusSessions, m.config.Interval()) {
		if i > 0 {
			dots.WriteString(" ")
		}
		if filled {
			dots.WriteString(lipgloss.NewStyle().Foreground(accent).Render("●"))
		} else {
			dots.WriteString(dimStyle.Render("○"))
		}
	}

	lines := []string{
		labelStyle.Render(m.state.Mode.Label()),
		clockStyle.Render(present.FormatClock(m.state.RemainingSeconds)),
		m.bar.ViewAs(m.state.Progress()),
		dots.String(),
		"",
		dimStyle.Render(m.statusLine()),
	}
	if m.confirmStop {
		lines = append(lines, "", warningStyle.Render("End this session? (y/n)"))
	}

	frame := frameStyle.BorderForeground(accent).Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, frame, m.help.View(m.keys))
}

func (m Model) statusLine() string {
	return fmt.Sprintf("%s · %d done · notifications %s · sound %s",
		strings.ToLower(string(m.state.Phase())),
		m.state.CompletedFocusSessions,
		onOff(m.config.NotificationsEnabled),
		onOff(m.config.SoundEnabled))
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}

// Run starts the terminal program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, controller Controller, options ...tea.ProgramOption) error {
	options = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, options...)
	program := tea.NewProgram(New(controller), options...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
