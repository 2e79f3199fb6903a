package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/pixelflip/scanboard/internal/countdown"
	"github.com/pixelflip/scanboard/internal/logtail"
	"github.com/pixelflip/scanboard/internal/prefs"
	"github.com/pixelflip/scanboard/internal/settings"
	"github.com/pixelflip/scanboard/internal/state"
)

// Commander sends run commands to the backend.
type Commander interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Settings  *settings.Store
	Status    *state.Store
	Commands  Commander
	Logger    logrus.FieldLogger
	ThemeName string
	Panel     string
	PrefsPath string
	// LogFile is shown in the diagnostics view.
	LogFile     string
	APIURL      string
	Environment string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	settings    *settings.Store
	status      *state.Store
	commands    Commander
	log         logrus.FieldLogger
	prefsPath   string
	logFile     string
	apiURL      string
	environment string
	keys        keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	loaded bool
	focus  panel

	// Data state
	snapshot state.Snapshot
	clock    countdown.Model
	// settingsVersion is the settings.Store version last drawn.
	settingsVersion uint64

	settingsPanel settingsPanel
	termsPanel    termsPanel
	console       consoleState

	// Overlays
	showHelp    bool
	diagnostics diagnosticsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := Model{
		ctx:         ctx,
		settings:    opts.Settings,
		status:      opts.Status,
		commands:    opts.Commands,
		log:         log.WithField("component", "ui"),
		prefsPath:   opts.PrefsPath,
		logFile:     opts.LogFile,
		apiURL:      opts.APIURL,
		environment: opts.Environment,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		focus:       parsePanel(opts.Panel),
		clock:       countdown.New(),
		settingsPanel: settingsPanel{
			zipInput: newZipInput(),
		},
		termsPanel: termsPanel{
			form: newTermForm(),
		},
	}
	if m.status != nil {
		m.snapshot = m.status.Snapshot()
	}
	m.termsPanel.viewport = viewport.New(0, 0)
	m.console.viewport = viewport.New(0, 0)
	m.diagnostics.viewport = viewport.New(0, 0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockCmd()}
	if m.settings != nil {
		cmds = append(cmds, loadSettingsCmd(m.ctx, m.settings))
	}
	if m.status != nil {
		cmds = append(cmds, waitForStatusCmd(m.ctx, m.status))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		nm, ok := next.(Model)
		if !ok {
			return next, cmd
		}
		settingsCmd := nm.syncSettings()
		return nm, tea.Batch(cmd, settingsCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case settingsLoadedMsg:
		m.loaded = true
		if m.settings != nil {
			m.settingsVersion = m.settings.Version()
		}
		// Panel heights follow the loaded platform list.
		m.layout()
		return m, m.syncCountdown()

	case statusChangedMsg:
		m.snapshot = m.status.Snapshot()
		m.refreshConsole()
		return m, tea.Batch(m.syncCountdown(), waitForStatusCmd(m.ctx, m.status))

	case countdown.TickMsg:
		var cmd tea.Cmd
		m.clock, cmd = m.clock.Update(msg)
		return m, cmd

	case clockMsg:
		if m.status != nil {
			// Picks up PolledAt for the "updated" age even when nothing was
			// republished.
			m.snapshot.PolledAt = m.status.Snapshot().PolledAt
		}
		return m, clockCmd()

	case diagnosticsMsg:
		m.diagnostics.apply(msg, m.theme)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if !m.loaded {
		return m.renderLoading()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.diagnostics.open {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// handleKey routes keys: overlays and text entry first, then global keys,
// then the focused panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.diagnostics.open {
		return m.handleDiagnosticsKey(msg)
	}
	if !m.loaded {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.settingsPanel.editingZip {
		return m.handleZipKey(msg)
	}
	if m.termsPanel.form.open {
		return m.handleTermFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshTerms()
		m.console.invalidate()
		m.refreshConsole()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.diagnostics.open = true
		return m, readDiagnosticsCmd(m.logFile)

	case key.Matches(msg, m.keys.Tab):
		m.setFocus(m.focus.next())
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.setFocus(m.focus.prev())
		return m, nil

	case key.Matches(msg, m.keys.Start):
		return m, m.startCmd()

	case key.Matches(msg, m.keys.Stop):
		return m, m.stopCmd()

	case key.Matches(msg, m.keys.StopAlt) && m.focus != panelTerms:
		return m, m.stopCmd()
	}

	switch m.focus {
	case panelSettings:
		return m.handleSettingsKey(msg)
	case panelTerms:
		return m.handleTermsKey(msg)
	case panelConsole:
		return m.handleConsoleKey(msg)
	}
	return m, nil
}

// startCmd is offered only while the scanner is not running.
func (m Model) startCmd() tea.Cmd {
	if m.commands == nil {
		return nil
	}
	if m.snapshot.Status.Running {
		m.log.WithField("command", "start").Info("start ignored, scanner already running")
		return nil
	}
	ctx, commands := m.ctx, m.commands
	return func() tea.Msg {
		_ = commands.Start(ctx)
		return nil
	}
}

// stopCmd is offered only while the scanner is running.
func (m Model) stopCmd() tea.Cmd {
	if m.commands == nil {
		return nil
	}
	if !m.snapshot.Status.Running {
		m.log.WithField("command", "stop").Info("stop ignored, scanner not running")
		return nil
	}
	ctx, commands := m.ctx, m.commands
	return func() tea.Msg {
		_ = commands.Stop(ctx)
		return nil
	}
}

// syncCountdown feeds the countdown its current inputs.
func (m *Model) syncCountdown() tea.Cmd {
	interval := 0
	if m.settings != nil {
		interval = m.settings.Settings().CheckInterval
	}
	st := m.snapshot.Status
	var cmd tea.Cmd
	m.clock, cmd = m.clock.SetSource(st.Running, st.LastCheck, interval)
	return cmd
}

// syncSettings redraws what depends on settings once the store has moved
// past the version last drawn.
func (m *Model) syncSettings() tea.Cmd {
	if m.settings == nil || !m.loaded {
		return nil
	}
	v := m.settings.Version()
	if v == m.settingsVersion {
		return nil
	}
	m.settingsVersion = v
	m.refreshTerms()
	return m.syncCountdown()
}

// setFocus moves focus and repaints the panels whose background follows it.
func (m *Model) setFocus(p panel) {
	m.focus = p
	m.refreshTerms()
	m.console.invalidate()
	m.refreshConsole()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Panel: m.focus.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// layout sizes every viewport after a resize.
func (m *Model) layout() {
	l := m.computeLayout()
	m.termsPanel.viewport.Width = max(l.rightWidth-4, 0)
	m.termsPanel.viewport.Height = max(l.topHeight-2, 0)
	m.console.viewport.Width = max(l.consoleWidth-4, 0)
	m.console.viewport.Height = max(l.consoleHeight-2, 0)
	m.diagnostics.viewport.Width = max(m.width-4, 0)
	m.diagnostics.viewport.Height = max(m.height-4, 0)
	m.refreshTerms()
	m.console.invalidate()
	m.refreshConsole()
}

// Messages

type settingsLoadedMsg struct{}

type statusChangedMsg struct{}

type clockMsg time.Time

type diagnosticsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func clockCmd() tea.Cmd {
	return tea.Tick(DefaultUIInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func loadSettingsCmd(ctx context.Context, store *settings.Store) tea.Cmd {
	return func() tea.Msg {
		// Failures are logged by the store; the seed stays on screen.
		_ = store.Load(ctx)
		return settingsLoadedMsg{}
	}
}

// waitForStatusCmd blocks until the status store publishes. It yields nil
// once ctx is done.
func waitForStatusCmd(ctx context.Context, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-store.Changes():
			return statusChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func readDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, DiagnosticsLineLimit)
		return diagnosticsMsg{entries: entries, err: err}
	}
}

func (m Model) renderLoading() string {
	text := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Text)).
		Render("LOADING...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
