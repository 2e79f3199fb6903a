package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which only the focused panel
	// is shown.
	LayoutCompactWidth = 80

	// LayoutDetailWidth is the minimum width to show the API URL in the header.
	LayoutDetailWidth = 120
)

// Limits and timing.
const (
	// DiagnosticsLineLimit is how many log lines the diagnostics view reads.
	DiagnosticsLineLimit = 500

	// DefaultUIInterval refreshes relative times in the header.
	DefaultUIInterval = time.Second

	// chromeHeight covers the header, stats and command bars.
	chromeHeight = 3
)

type panelLayout struct {
	compact       bool
	leftWidth     int
	rightWidth    int
	topHeight     int
	consoleWidth  int
	consoleHeight int
}

// computeLayout splits the body: settings and terms side by side on top, the
// console across the bottom. Compact terminals give the focused panel
// everything.
func (m Model) computeLayout() panelLayout {
	body := max(m.height-chromeHeight, 0)
	if m.width < LayoutCompactWidth {
		return panelLayout{
			compact:       true,
			leftWidth:     m.width,
			rightWidth:    m.width,
			topHeight:     body,
			consoleWidth:  m.width,
			consoleHeight: body,
		}
	}

	rows := 0
	if m.settings != nil {
		rows = len(settingsRows(m.settings.Settings()))
	}
	top := min(max(rows+2, 8), max(body-6, 0))
	left := m.width / 2
	return panelLayout{
		leftWidth:     left,
		rightWidth:    m.width - left,
		topHeight:     top,
		consoleWidth:  m.width,
		consoleHeight: body - top,
	}
}

// renderTitledBox renders content in a box with the title set into the top
// border: ┌─── Title ───┐. Focused boxes use the focus border and background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	if width < 4 || height < 2 {
		return ""
	}
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	var b strings.Builder
	b.WriteString(bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle))
	b.WriteString(bg.Render(" "+title+" ", titleStyle))
	b.WriteString(bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle))
	b.WriteString("\n")

	side := bg.Render("│", borderStyle)
	lines := strings.Split(content, "\n")
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		b.WriteString(side + bg.Space() + bg.FillLine(line, max(innerWidth-2, 0)) + bg.Space() + side)
		b.WriteString("\n")
	}
	b.WriteString(bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle))
	return b.String()
}
