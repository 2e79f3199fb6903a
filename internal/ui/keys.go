package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Diagnostics key.Binding
	Tab         key.Binding
	ShiftTab    key.Binding
	Escape      key.Binding

	// Scanner commands
	Start   key.Binding
	Stop    key.Binding
	StopAlt key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Settings panel
	Toggle   key.Binding
	Increase key.Binding
	Decrease key.Binding

	// Terms panel
	AddTerm    key.Binding
	RemoveTerm key.Binding

	// Forms
	Confirm   key.Binding
	NextField key.Binding

	// Diagnostics
	Refresh key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Diagnostics log"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next panel"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous panel"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel / close"),
		),

		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Start scanner"),
		),
		Stop: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Stop scanner"),
		),
		StopAlt: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Stop scanner (outside terms)"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space/enter", "Toggle or edit"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l", "+", "="),
			key.WithHelp("l/+", "Increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("left/-", "Decrease"),
		),

		AddTerm: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add search term"),
		),
		RemoveTerm: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove search term"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch field"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Top, k.Bottom},
		{k.Start, k.Stop, k.StopAlt},
		{k.Toggle, k.Increase, k.Decrease},
		{k.AddTerm, k.RemoveTerm},
		{k.Diagnostics, k.CycleTheme, k.Help, k.Quit},
	}
}
