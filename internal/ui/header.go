package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const appTitle = "PIXELFLIP SCANNER"

// renderHeader renders the title, the status light and the age of the last
// poll.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	st := m.snapshot.Status
	light := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.StatusColor(st.State))).
		Background(lipgloss.Color(m.theme.Surface)).
		Render("●")
	state := strings.ToUpper(strings.TrimSpace(st.State))
	if state == "" {
		state = "UNKNOWN"
	}

	parts := []string{
		bg.Render(appTitle, styles.Logo),
		light + bg.Space() + bg.Render(state, styles.Text.Bold(true)),
	}
	if m.snapshot.PolledAt.IsZero() {
		parts = append(parts, bg.Render("waiting for first poll", styles.FaintText))
	} else {
		parts = append(parts, bg.Render("updated "+humanize.Time(m.snapshot.PolledAt), styles.MutedText))
	}

	left := strings.Join(parts, sep)
	right := ""
	if m.width >= LayoutDetailWidth && m.apiURL != "" {
		right = bg.Render(m.environment+" "+m.apiURL, styles.FaintText)
	}
	return m.fillBar(left, right, m.theme.Surface)
}

// renderStats renders the countdown and the daily counters.
func (m Model) renderStats() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(3)
	st := m.snapshot.Status

	label := "SCRAPER INACTIVE"
	clockStyle := styles.FaintText
	if m.clock.Active() {
		label = "NEXT CHECK IN"
		clockStyle = styles.AccentText.Bold(true)
	}
	parts := []string{
		bg.Render(label, styles.MutedText) + bg.Space() + bg.Render(m.clock.View(), clockStyle),
	}
	if st.Running && m.settings != nil {
		interval := m.settings.Settings().CheckInterval
		parts = append(parts, bg.Render("Checking every "+strconv.Itoa(interval)+" minutes", styles.FaintText))
	}
	parts = append(parts,
		bg.Render("MATCHES", styles.MutedText)+bg.Space()+bg.Render(formatCount(st.MatchesFoundToday), styles.SuccessText),
		bg.Render("ITEMS", styles.MutedText)+bg.Space()+bg.Render(formatCount(st.ItemsScannedToday), styles.Text.Bold(true)),
	)
	return m.fillBar(strings.Join(parts, sep), "", m.theme.Surface)
}

// renderCommandBar shows the keys that do something right now.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	type hint struct{ key, desc string }
	hints := []hint{{"tab", "panel"}}
	if m.snapshot.Status.Running {
		hints = append(hints, hint{"S", "stop"})
	} else {
		hints = append(hints, hint{"s", "start"})
	}
	switch m.focus {
	case panelSettings:
		hints = append(hints, hint{"space", "toggle"}, hint{"+/-", "adjust"})
	case panelTerms:
		hints = append(hints, hint{"a", "add"}, hint{"x", "remove"})
	case panelConsole:
		hints = append(hints, hint{"j/k", "scroll"})
	}
	hints = append(hints, hint{"D", "log"}, hint{"T", "theme"}, hint{"?", "help"}, hint{"e", "quit"})

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, bg.Render(h.key, styles.WarningText)+bg.Space()+bg.Render(h.desc, styles.MutedText))
	}
	return m.fillBar(strings.Join(parts, bg.Spaces(2)), "", m.theme.Background)
}

// fillBar lays left and right out across the full width on bgColor.
func (m Model) fillBar(left, right, bgColor string) string {
	bg := NewBgStyle(bgColor)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	line := bg.Space() + left + bg.Spaces(gap) + right
	return bg.FillLine(line, m.width)
}
