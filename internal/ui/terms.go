package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelflip/scanboard/internal/settings"
)

type termsPanel struct {
	cursor   int
	viewport viewport.Model
	form     termForm
}

// termForm is the add-or-update form for a search term.
type termForm struct {
	open    bool
	term    textinput.Model
	price   textinput.Model
	field   int // 0 term, 1 price
	invalid bool
}

func newTermForm() termForm {
	term := textinput.New()
	term.Prompt = "TERM  "
	term.Placeholder = "gameboy color"
	term.CharLimit = 64

	price := textinput.New()
	price.Prompt = "MAX $ "
	price.Placeholder = "40"
	price.CharLimit = 7

	return termForm{term: term, price: price}
}

func (f *termForm) reset() tea.Cmd {
	f.term.SetValue("")
	f.price.SetValue("")
	f.invalid = false
	f.field = 0
	f.price.Blur()
	return f.term.Focus()
}

func (f *termForm) switchField() tea.Cmd {
	if f.field == 0 {
		f.field = 1
		f.term.Blur()
		return f.price.Focus()
	}
	f.field = 0
	f.price.Blur()
	return f.term.Focus()
}

func (m Model) handleTermsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settings == nil {
		return m, nil
	}
	terms := m.settings.Settings().Thresholds.Keys()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.termsPanel.cursor > 0 {
			m.termsPanel.cursor--
			m.refreshTerms()
		}

	case key.Matches(msg, m.keys.Down):
		if m.termsPanel.cursor < len(terms)-1 {
			m.termsPanel.cursor++
			m.refreshTerms()
		}

	case key.Matches(msg, m.keys.AddTerm):
		m.termsPanel.form.open = true
		return m, m.termsPanel.form.reset()

	case key.Matches(msg, m.keys.RemoveTerm):
		if len(terms) == 0 {
			return m, nil
		}
		idx := min(max(m.termsPanel.cursor, 0), len(terms)-1)
		m.settings.RemoveThreshold(terms[idx])
		m.refreshTerms()
	}
	return m, nil
}

// handleTermFormKey drives the add form. Invalid input keeps the form open.
func (m Model) handleTermFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := &m.termsPanel.form
	switch {
	case key.Matches(msg, m.keys.Escape):
		form.open = false
		form.term.Blur()
		form.price.Blur()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, form.switchField()

	case key.Matches(msg, m.keys.Confirm):
		if !m.settings.AddThreshold(form.term.Value(), form.price.Value()) {
			form.invalid = true
			return m, nil
		}
		term, _ := settings.NormalizeTerm(form.term.Value())
		form.open = false
		form.term.Blur()
		form.price.Blur()
		if idx := slices.Index(m.settings.Settings().Thresholds.Keys(), term); idx >= 0 {
			m.termsPanel.cursor = idx
		}
		m.refreshTerms()
		return m, nil
	}

	var cmd tea.Cmd
	if form.field == 0 {
		form.term, cmd = form.term.Update(msg)
	} else {
		form.price, cmd = form.price.Update(msg)
	}
	form.invalid = false
	return m, cmd
}

// refreshTerms re-renders the term list into its viewport. The viewport keeps
// its offset; it only moves to keep the selection visible.
func (m *Model) refreshTerms() {
	if m.settings == nil {
		return
	}
	th := m.settings.Settings().Thresholds
	m.termsPanel.cursor = min(max(m.termsPanel.cursor, 0), max(th.Len()-1, 0))

	focused := m.focus == panelTerms
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	width := m.termsPanel.viewport.Width

	if th.Len() == 0 {
		m.termsPanel.viewport.SetContent(styles.FaintText.Render("NO SEARCH TERMS"))
		return
	}

	lines := make([]string, 0, th.Len())
	i := 0
	for term, price := range th.All() {
		name := strings.ToUpper(term)
		value := formatPrice(price)
		gap := max(width-len([]rune(name))-len(value), 1)
		if i == m.termsPanel.cursor && focused {
			lines = append(lines, m.theme.Styles().Selected.Render(truncate(name+strings.Repeat(" ", gap)+value, max(width, 1))))
		} else {
			lines = append(lines, styles.Text.Render(name)+styles.Text.Render(strings.Repeat(" ", gap))+styles.SuccessText.Render(value))
		}
		i++
	}
	m.termsPanel.viewport.SetContent(strings.Join(lines, "\n"))

	vp := &m.termsPanel.viewport
	if vp.Height <= 0 {
		return
	}
	if m.termsPanel.cursor < vp.YOffset {
		vp.SetYOffset(m.termsPanel.cursor)
	} else if m.termsPanel.cursor >= vp.YOffset+vp.Height {
		vp.SetYOffset(m.termsPanel.cursor - vp.Height + 1)
	}
}

func (m Model) renderTermsPanel(width, height int) string {
	focused := m.focus == panelTerms
	title := "SEARCH TERMS"
	if !m.termsPanel.form.open {
		return m.renderTitledBox(title, m.termsPanel.viewport.View(), width, height, focused)
	}

	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	form := m.termsPanel.form
	lines := []string{
		form.term.View(),
		form.price.View(),
		"",
	}
	if form.invalid {
		lines = append(lines, styles.DangerText.Render("Enter a term and a price above 0"))
	} else {
		lines = append(lines, styles.FaintText.Render("enter save · tab switch · esc cancel"))
	}
	return m.renderTitledBox("ADD TERM", strings.Join(lines, "\n"), width, height, true)
}
