package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// consoleState renders recent activity. Content is rebuilt only when the
// displayed status version moves, so polls with nothing new leave the
// scroll position alone.
type consoleState struct {
	viewport        viewport.Model
	renderedVersion uint64
	valid           bool
}

// invalidate forces the next refresh to rebuild, e.g. after a theme change.
func (c *consoleState) invalidate() {
	c.valid = false
}

func (m *Model) refreshConsole() {
	if m.console.valid && m.console.renderedVersion == m.snapshot.Version {
		return
	}
	m.console.viewport.SetContent(m.renderActivity(m.console.viewport.Width))
	m.console.renderedVersion = m.snapshot.Version
	m.console.valid = true
}

func (m Model) renderActivity(width int) string {
	bgColor := m.theme.SurfaceAlt
	if m.focus == panelConsole {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)

	activity := m.snapshot.Status.RecentActivity
	if len(activity) == 0 {
		return styles.FaintText.Render("WAITING FOR ACTIVITY...")
	}

	lines := make([]string, 0, len(activity))
	for _, a := range activity {
		msgStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.ActivityColor(a.Kind()))).
			Background(lipgloss.Color(bgColor))
		prefix := "[" + a.Time + "] "
		line := styles.MutedText.Render(prefix) +
			msgStyle.Render(truncate(a.Message, max(width-len(prefix), 1)))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.console.viewport
	switch {
	case key.Matches(msg, m.keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	default:
		var cmd tea.Cmd
		m.console.viewport, cmd = m.console.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) renderConsolePanel(width, height int) string {
	return m.renderTitledBox("CONSOLE", m.console.viewport.View(), width, height, m.focus == panelConsole)
}
