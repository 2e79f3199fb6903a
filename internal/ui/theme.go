package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pixelflip/scanboard/internal/scanner"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, stats and command bars
	SurfaceAlt string // Panel interiors
	FocusBg    string // Focused panel interior

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors colors the status light by scanner state.
	StatusColors map[string]string
	// ActivityColors colors console lines by activity kind.
	ActivityColors map[string]string
}

// StatusColor returns the light color for a scanner state. Unknown states get
// the muted grey.
func (t Theme) StatusColor(state string) string {
	if c, ok := t.StatusColors[strings.ToLower(strings.TrimSpace(state))]; ok {
		return c
	}
	return t.Muted
}

// ActivityColor returns the console color for an activity kind.
func (t Theme) ActivityColor(kind string) string {
	if c, ok := t.ActivityColors[kind]; ok {
		return c
	}
	return t.Text
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
}

// WithBackground returns a copy of Styles whose text styles all carry bgColor,
// so styled runs never show the terminal background through.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),

		Header:   s.Header.Background(bg),
		Logo:     s.Logo.Background(bg),
		Selected: s.Selected,
	}
}

// Theme definitions

var themes = map[string]Theme{
	"Arcade":   arcadeTheme(),
	"Handheld": handheldTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Arcade", "Handheld", "Slate"}

// GetTheme returns a theme by name, falling back to Arcade.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return arcadeTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func arcadeTheme() Theme {
	// Indigo and violet, after the scanner's web dashboard.
	return Theme{
		Name: "Arcade",

		Background: "#1a1b3a",
		Surface:    "#23244d",
		SurfaceAlt: "#2c2d5e",
		FocusBg:    "#35366f",

		SelectionBg:   "#5a67d8",
		SelectionText: "#f7fafc",

		Border:      "#4c51bf",
		BorderFocus: "#a3bffa",

		Text:    "#edf2f7",
		Muted:   "#a0aec0",
		Faint:   "#718096",
		Accent:  "#9f7aea",
		Success: "#48bb78",
		Warning: "#ecc94b",
		Danger:  "#f56565",
		Info:    "#63b3ed",

		StatusColors: map[string]string{
			scanner.StateStopped: "#718096",
			scanner.StateRunning: "#48bb78",
			scanner.StateError:   "#f56565",
			scanner.StatePaused:  "#ecc94b",
		},
		ActivityColors: map[string]string{
			scanner.KindSuccess: "#48bb78",
			scanner.KindError:   "#f56565",
			scanner.KindInfo:    "#e2e8f0",
		},
	}
}

func handheldTheme() Theme {
	// Four-shade green of the original handheld screen.
	return Theme{
		Name: "Handheld",

		Background: "#0f380f",
		Surface:    "#1e4a1e",
		SurfaceAlt: "#244f24",
		FocusBg:    "#306230",

		SelectionBg:   "#8bac0f",
		SelectionText: "#0f380f",

		Border:      "#306230",
		BorderFocus: "#9bbc0f",

		Text:    "#c4dc8c",
		Muted:   "#8bac0f",
		Faint:   "#6b8c2f",
		Accent:  "#9bbc0f",
		Success: "#b8e05a",
		Warning: "#e0d85a",
		Danger:  "#e07a5a",
		Info:    "#9bbc0f",

		StatusColors: map[string]string{
			scanner.StateStopped: "#6b8c2f",
			scanner.StateRunning: "#b8e05a",
			scanner.StateError:   "#e07a5a",
			scanner.StatePaused:  "#e0d85a",
		},
		ActivityColors: map[string]string{
			scanner.KindSuccess: "#b8e05a",
			scanner.KindError:   "#e07a5a",
			scanner.KindInfo:    "#c4dc8c",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		StatusColors: map[string]string{
			scanner.StateStopped: "#64748b",
			scanner.StateRunning: "#22c55e",
			scanner.StateError:   "#dc2626",
			scanner.StatePaused:  "#f59e0b",
		},
		ActivityColors: map[string]string{
			scanner.KindSuccess: "#22c55e",
			scanner.KindError:   "#ef4444",
			scanner.KindInfo:    "#cbd5e1",
		},
	}
}
