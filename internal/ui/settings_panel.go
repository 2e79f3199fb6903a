package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelflip/scanboard/internal/scanner"
)

type settingsPanel struct {
	cursor     int
	editingZip bool
	zipInput   textinput.Model
}

type rowKind int

const (
	rowPlatform rowKind = iota
	rowZip
	rowDistance
	rowInterval
	rowAI
	rowDescription
	rowStrictness
)

type settingsRow struct {
	kind     rowKind
	platform string
}

func newZipInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "zip code"
	ti.CharLimit = 10
	return ti
}

// settingsRows lists the editable rows for s. Platforms come first, in the
// order the backend sent them.
func settingsRows(s scanner.Settings) []settingsRow {
	rows := make([]settingsRow, 0, s.Platforms.Len()+6)
	for _, name := range s.Platforms.Keys() {
		rows = append(rows, settingsRow{kind: rowPlatform, platform: name})
	}
	rows = append(rows,
		settingsRow{kind: rowZip},
		settingsRow{kind: rowDistance},
		settingsRow{kind: rowInterval},
		settingsRow{kind: rowAI},
	)
	if s.DescriptionScan != nil {
		rows = append(rows, settingsRow{kind: rowDescription})
	}
	return append(rows, settingsRow{kind: rowStrictness})
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settings == nil {
		return m, nil
	}
	rows := settingsRows(m.settings.Settings())
	if len(rows) == 0 {
		return m, nil
	}
	m.settingsPanel.cursor = min(max(m.settingsPanel.cursor, 0), len(rows)-1)
	row := rows[m.settingsPanel.cursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.settingsPanel.cursor > 0 {
			m.settingsPanel.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.settingsPanel.cursor < len(rows)-1 {
			m.settingsPanel.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		switch row.kind {
		case rowPlatform:
			m.settings.TogglePlatform(row.platform)
		case rowZip:
			m.settingsPanel.editingZip = true
			m.settingsPanel.zipInput.SetValue(m.settings.Settings().ZipCode)
			m.settingsPanel.zipInput.CursorEnd()
			return m, m.settingsPanel.zipInput.Focus()
		case rowAI:
			m.settings.ToggleAIDetection()
		case rowDescription:
			m.settings.ToggleDescriptionScan()
		case rowInterval:
			m.settings.CycleInterval(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Increase):
		return m.stepSetting(row, 1)

	case key.Matches(msg, m.keys.Decrease):
		return m.stepSetting(row, -1)
	}
	return m, nil
}

func (m Model) stepSetting(row settingsRow, dir int) (tea.Model, tea.Cmd) {
	switch row.kind {
	case rowDistance:
		m.settings.StepDistance(dir)
	case rowInterval:
		m.settings.CycleInterval(dir)
	case rowStrictness:
		m.settings.StepStrictness(dir)
	}
	return m, nil
}

// handleZipKey drives the zip editor. Enter commits, esc discards.
func (m Model) handleZipKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.settings.SetZipCode(m.settingsPanel.zipInput.Value())
		m.settingsPanel.editingZip = false
		m.settingsPanel.zipInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.settingsPanel.editingZip = false
		m.settingsPanel.zipInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.settingsPanel.zipInput, cmd = m.settingsPanel.zipInput.Update(msg)
	return m, cmd
}

func (m Model) renderSettingsPanel(width, height int) string {
	focused := m.focus == panelSettings
	bgColor := m.theme.SurfaceAlt
	if focused {
		bgColor = m.theme.FocusBg
	}
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-4, 0)

	s := m.settings.Settings()
	rows := settingsRows(s)
	cursor := min(max(m.settingsPanel.cursor, 0), len(rows)-1)

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		label, value := m.settingsRowText(s, row)
		text := padRight(label, 16) + value
		switch {
		case i == cursor && focused:
			if row.kind == rowZip && m.settingsPanel.editingZip {
				lines = append(lines, styles.AccentText.Render(padRight(label, 16))+m.settingsPanel.zipInput.View())
				continue
			}
			lines = append(lines, m.theme.Styles().Selected.Width(inner).Render(truncate(text, inner)))
		case row.kind == rowStrictness:
			lines = append(lines, styles.MutedText.Render(padRight(label, 16))+styles.WarningText.Render(value))
		default:
			lines = append(lines, styles.MutedText.Render(padRight(label, 16))+styles.Text.Render(value))
		}
	}

	// Leave room for the border.
	visible := max(height-2, 0)
	if len(lines) > visible && visible > 0 {
		start := min(max(cursor-visible+1, 0), len(lines)-visible)
		lines = lines[start : start+visible]
	}
	return m.renderTitledBox("SETTINGS", strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) settingsRowText(s scanner.Settings, row settingsRow) (string, string) {
	switch row.kind {
	case rowPlatform:
		on, _ := s.Platforms.Get(row.platform)
		return strings.ToUpper(row.platform), checkbox(on)
	case rowZip:
		return "ZIP CODE", s.ZipCode
	case rowDistance:
		return "DISTANCE", fmt.Sprintf("< %d mi >", s.Distance)
	case rowInterval:
		return "CHECK EVERY", fmt.Sprintf("< %d min >", s.CheckInterval)
	case rowAI:
		return "AI DETECTION", checkbox(s.AIDetection)
	case rowDescription:
		return "DESCRIPTIONS", checkbox(s.DescriptionScan != nil && *s.DescriptionScan)
	case rowStrictness:
		return "STRICTNESS", fmt.Sprintf("< %s >", scanner.StrictnessLabel(s.Strictness))
	}
	return "", ""
}
