// Package tui shows the live tracking status with bubbletea.
package tui

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/what-have-i-done/internal/cli"
	"github.com/Veraticus/what-have-i-done/internal/tracker"
	"github.com/Veraticus/what-have-i-done/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the live view state. Tracking itself runs in its own goroutine; the
// model only forwards key presses and displays what the tracker publishes.
type Model struct {
	err      error
	commands chan<- tracker.Command
	cancel   func()
	help     help.Model
	theme    themes.Theme
	keymap   KeyMap
	status   tracker.Status
	width    int
	showHelp bool
	quitting bool
}

func newModel(cfg Config, commands chan<- tracker.Command, cancel func()) Model {
	return Model{
		commands: commands,
		cancel:   cancel,
		help:     help.New(),
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		showHelp: cfg.ShowHelp,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case statusMsg:
		m.status = msg.status

	case noticeMsg:
		if text := cli.FormatNotice(msg.notice); text != "" {
			return m, tea.Println(text)
		}

	case summaryMsg:
		var b strings.Builder
		if err := cli.WriteSummary(&b, cli.SummaryTitle(msg.summary), msg.summary.Report, msg.summary.Details); err != nil {
			slog.Debug("Failed to render summary", "error", err)
		}
		return m, tea.Println(strings.TrimRight(b.String(), "\n"))

	case trackerDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		// Wait for the tracker to finish its final flush before leaving.
		m.quitting = true
		m.cancel()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Summary):
		m.send(tracker.CommandSummary)
	case key.Matches(msg, m.keymap.Details):
		m.send(tracker.CommandDetails)
	case key.Matches(msg, m.keymap.ManualAdd):
		m.send(tracker.CommandManualAdd)
	case key.Matches(msg, m.keymap.ManualSubtract):
		m.send(tracker.CommandManualSubtract)
	case key.Matches(msg, m.keymap.Pin):
		m.send(tracker.CommandPin)
	case key.Matches(msg, m.keymap.Unpin):
		m.send(tracker.CommandUnpin)
	}

	return m, nil
}

func (m Model) send(cmd tracker.Command) {
	select {
	case m.commands <- cmd:
	default:
		slog.Warn("Command dropped, tracker is busy", "command", cmd.String())
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return m.theme.Quitting.Render("Saving and shutting down...") + "\n"
	}

	line := cli.FormatStatus(m.status)
	if m.width > 0 {
		line = truncate(line, m.width-2)
	}

	var b strings.Builder
	switch {
	case !m.status.Active:
		b.WriteString(m.theme.Idle.Render(line))
	case m.status.Pinned:
		b.WriteString(m.theme.Pinned.Render(line))
	default:
		b.WriteString(m.theme.Status.Render(line))
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.theme.Help.Render(m.help.View(m.keymap)))
	}

	return b.String() + "\n"
}
