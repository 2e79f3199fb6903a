package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pixelflip/scanboard/internal/logtail"
)

// diagnosticsState is the full-screen log view. Request and save failures
// never surface in the dashboard itself; this is where they show up.
type diagnosticsState struct {
	open     bool
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
}

func (d *diagnosticsState) apply(msg diagnosticsMsg, theme Theme) {
	d.entries = msg.entries
	d.err = msg.err
	d.viewport.SetContent(formatEntries(d.entries, d.err, theme, d.viewport.Width))
	d.viewport.GotoBottom()
}

func formatEntries(entries []logtail.Entry, err error, theme Theme, width int) string {
	styles := theme.Styles()
	if err != nil {
		return styles.DangerText.Render("read log: " + err.Error())
	}
	if len(entries) == 0 {
		return styles.FaintText.Render("No log entries yet")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Message == "" && e.Level == "" {
			lines = append(lines, styles.FaintText.Render(truncate(e.Raw, width)))
			continue
		}
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(styles.MutedText.Render(e.Time.Local().Format("15:04:05")))
			b.WriteString(" ")
		}
		b.WriteString(levelStyle(theme, e.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(levelAbbrev(e.Level)))))
		b.WriteString(" ")
		if component, ok := e.Field("component"); ok {
			b.WriteString(styles.AccentText.Render(padRight(component, 8)))
			b.WriteString(" ")
		}
		b.WriteString(styles.Text.Render(e.Message))
		for _, f := range e.Fields {
			if f.Key == "component" {
				continue
			}
			b.WriteString(" ")
			b.WriteString(styles.FaintText.Render(f.Key + "="))
			b.WriteString(styles.MutedText.Render(f.Value))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func levelAbbrev(level string) string {
	if strings.EqualFold(level, "warning") {
		return "warn"
	}
	return level
}

func levelStyle(theme Theme, level string) lipgloss.Style {
	color := theme.Muted
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		color = theme.Danger
	case "warning", "warn":
		color = theme.Warning
	case "info":
		color = theme.Info
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Diagnostics):
		m.diagnostics.open = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, readDiagnosticsCmd(m.logFile)
	case key.Matches(msg, m.keys.Top):
		m.diagnostics.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.diagnostics.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.diagnostics.viewport, cmd = m.diagnostics.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderDiagnostics() string {
	title := "DIAGNOSTICS"
	if m.logFile != "" {
		title += "  " + m.logFile
	}
	box := m.renderTitledBox(title, m.diagnostics.viewport.View(), m.width, max(m.height-1, 2), true)
	hint := m.theme.Styles().FaintText.Render("esc/D close · r reload · j/k scroll · g/G top/bottom")
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}
