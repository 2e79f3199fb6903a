package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the dashboard: header, stats, the panels and the
// command bar.
func (m Model) renderMain() string {
	l := m.computeLayout()

	var body string
	if l.compact {
		switch m.focus {
		case panelTerms:
			body = m.renderTermsPanel(l.rightWidth, l.topHeight)
		case panelConsole:
			body = m.renderConsolePanel(l.consoleWidth, l.consoleHeight)
		default:
			body = m.renderSettingsPanel(l.leftWidth, l.topHeight)
		}
	} else {
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderSettingsPanel(l.leftWidth, l.topHeight),
			m.renderTermsPanel(l.rightWidth, l.topHeight),
		)
		body = lipgloss.JoinVertical(lipgloss.Left, top, m.renderConsolePanel(l.consoleWidth, l.consoleHeight))
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderStats(),
		body,
		m.renderCommandBar(),
	)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(view)
}
