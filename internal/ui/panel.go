package ui

// panel identifies the focused dashboard panel.
type panel int

const (
	panelSettings panel = iota
	panelTerms
	panelConsole
	panelCount
)

func (p panel) next() panel {
	return (p + 1) % panelCount
}

func (p panel) prev() panel {
	return (p + panelCount - 1) % panelCount
}

func (p panel) String() string {
	switch p {
	case panelTerms:
		return "terms"
	case panelConsole:
		return "console"
	default:
		return "settings"
	}
}

// parsePanel maps a saved panel name back to a panel. Unknown names focus
// settings.
func parsePanel(name string) panel {
	switch name {
	case "terms":
		return panelTerms
	case "console":
		return panelConsole
	default:
		return panelSettings
	}
}
