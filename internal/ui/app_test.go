package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/pixelflip/scanboard/internal/scanner"
	"github.com/pixelflip/scanboard/internal/settings"
	"github.com/pixelflip/scanboard/internal/state"
)

type fakeBackend struct {
	mu    sync.Mutex
	saved []scanner.Settings
}

func (f *fakeBackend) FetchSettings(context.Context) (scanner.Settings, error) {
	return settings.DefaultSettings(), nil
}

func (f *fakeBackend) SaveSettings(_ context.Context, s scanner.Settings) (scanner.Ack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, s)
	return scanner.Ack{Success: true}, nil
}

func (f *fakeBackend) saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeCommander struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (f *fakeCommander) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return nil
}

func (f *fakeCommander) Stop(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

type harness struct {
	backend  *fakeBackend
	commands *fakeCommander
	settings *settings.Store
	status   *state.Store
}

func newHarness(t *testing.T) (Model, *harness) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	h := &harness{
		backend:  &fakeBackend{},
		commands: &fakeCommander{},
		status:   state.NewStore(scanner.Status{State: scanner.StateStopped}),
	}
	h.settings = settings.New(h.backend, settings.DefaultSettings(), settings.WithLogger(logger))
	t.Cleanup(h.settings.Wait)

	m := New(Options{
		Settings: h.settings,
		Status:   h.status,
		Commands: h.commands,
		Logger:   logger,
	})
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = step(t, m, settingsLoadedMsg{})
	return m, h
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

func publish(t *testing.T, m Model, h *harness, st scanner.Status) Model {
	t.Helper()
	if !h.status.Offer(st) {
		t.Fatal("status was not published")
	}
	return step(t, m, statusChangedMsg{})
}

func TestStartOnlyOfferedWhileStopped(t *testing.T) {
	m, h := newHarness(t)

	m, cmd := press(t, m, "S")
	if cmd != nil {
		t.Fatal("stop should be disabled while stopped")
	}
	m, cmd = press(t, m, "s")
	if cmd == nil {
		t.Fatal("start should be offered while stopped")
	}
	cmd()
	if h.commands.starts != 1 {
		t.Fatalf("starts = %d, want 1", h.commands.starts)
	}

	m = publish(t, m, h, scanner.Status{Running: true, State: scanner.StateRunning})
	if _, cmd = press(t, m, "s"); cmd != nil {
		t.Fatal("start should be disabled while running")
	}
	_, cmd = press(t, m, "x")
	if cmd == nil {
		t.Fatal("x should stop outside the terms panel")
	}
	cmd()
	if h.commands.stops != 1 {
		t.Fatalf("stops = %d, want 1", h.commands.stops)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m, _ := newHarness(t)
	want := []panel{panelTerms, panelConsole, panelSettings}
	for _, p := range want {
		m, _ = press(t, m, "tab")
		if m.focus != p {
			t.Fatalf("focus = %v, want %v", m.focus, p)
		}
	}
}

func TestAddTermThroughForm(t *testing.T) {
	m, h := newHarness(t)
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "a")
	if !m.termsPanel.form.open {
		t.Fatal("form did not open")
	}

	m = typeText(t, m, " N64 ")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "45")
	m, _ = press(t, m, "enter")

	if m.termsPanel.form.open {
		t.Fatal("form should close after a valid entry")
	}
	th := h.settings.Settings().Thresholds
	if price, ok := th.Get("n64"); !ok || price != 45 {
		t.Fatalf("n64 = %d, %v; want 45", price, ok)
	}
	keys := th.Keys()
	if keys[len(keys)-1] != "n64" {
		t.Fatalf("new term should be appended, got %v", keys)
	}
	if m.termsPanel.cursor != len(keys)-1 {
		t.Fatalf("cursor = %d, want the new term", m.termsPanel.cursor)
	}
	h.settings.Wait()
	if h.backend.saves() != 1 {
		t.Fatalf("saves = %d, want 1", h.backend.saves())
	}
}

func TestInvalidTermKeepsFormOpen(t *testing.T) {
	m, h := newHarness(t)
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "a")
	m = typeText(t, m, "psp")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "0")
	m, _ = press(t, m, "enter")

	if !m.termsPanel.form.open || !m.termsPanel.form.invalid {
		t.Fatal("form should stay open and flag the entry")
	}
	if h.settings.Settings().Thresholds.Has("psp") {
		t.Fatal("invalid entry must not be stored")
	}
	m, _ = press(t, m, "esc")
	if m.termsPanel.form.open {
		t.Fatal("esc should close the form")
	}
	h.settings.Wait()
	if h.backend.saves() != 0 {
		t.Fatalf("saves = %d, want 0", h.backend.saves())
	}
}

func TestRemoveTermDoesNotStop(t *testing.T) {
	m, h := newHarness(t)
	m = publish(t, m, h, scanner.Status{Running: true, State: scanner.StateRunning})
	m, _ = press(t, m, "tab")

	m, cmd := press(t, m, "x")
	if cmd != nil {
		cmd()
	}
	if h.commands.stops != 0 {
		t.Fatal("x in the terms panel must not stop the scanner")
	}
	if h.settings.Settings().Thresholds.Has("gameboy") {
		t.Fatal("selected term was not removed")
	}
	if !strings.Contains(m.termsPanel.viewport.View(), "GBA SP") {
		t.Fatal("terms list should be re-rendered upper-cased")
	}
}

func TestSettingsRowsEdit(t *testing.T) {
	m, h := newHarness(t)

	// First row is the first platform.
	m, _ = press(t, m, " ")
	if on, _ := h.settings.Settings().Platforms.Get("craigslist"); on {
		t.Fatal("craigslist should be toggled off")
	}

	// platforms, then zip, then distance
	for range 4 {
		m, _ = press(t, m, "j")
	}
	m, _ = press(t, m, "+")
	if got := h.settings.Settings().Distance; got != 30 {
		t.Fatalf("distance = %d, want 30", got)
	}

	m, _ = press(t, m, "k")
	m, _ = press(t, m, "enter")
	if !m.settingsPanel.editingZip {
		t.Fatal("enter on zip should start editing")
	}
	m.settingsPanel.zipInput.SetValue("10001")
	m, _ = press(t, m, "enter")
	if m.settingsPanel.editingZip {
		t.Fatal("enter should commit the zip")
	}
	if got := h.settings.Settings().ZipCode; got != "10001" {
		t.Fatalf("zip = %q, want 10001", got)
	}
}

func TestConsoleKeepsScrollWithoutNewVersion(t *testing.T) {
	m, h := newHarness(t)

	activity := make([]scanner.Activity, 60)
	for i := range activity {
		activity[i] = scanner.Activity{Time: "12:00:00", Type: "info", Message: fmt.Sprintf("line %d", i)}
	}
	m = publish(t, m, h, scanner.Status{State: scanner.StateStopped, RecentActivity: activity})
	if m.console.renderedVersion != m.snapshot.Version {
		t.Fatal("console should render the published version")
	}

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	for range 3 {
		m, _ = press(t, m, "j")
	}
	offset := m.console.viewport.YOffset
	if offset == 0 {
		t.Fatal("console did not scroll")
	}

	// Same content: nothing is published and the offset stays.
	if h.status.Offer(scanner.Status{State: scanner.StateStopped, RecentActivity: activity, LastCheck: "12:00:05"}) {
		t.Fatal("identical activity should not publish")
	}
	m = step(t, m, clockMsg{})
	if m.console.viewport.YOffset != offset {
		t.Fatalf("offset = %d, want %d", m.console.viewport.YOffset, offset)
	}
}

func TestWaitingForActivity(t *testing.T) {
	m, _ := newHarness(t)
	if !strings.Contains(m.console.viewport.View(), "WAITING FOR ACTIVITY...") {
		t.Fatal("empty console should show the waiting message")
	}
}

func TestKeysIgnoredUntilLoaded(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := New(Options{Commands: &fakeCommander{}, Logger: logger})
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.View(), "LOADING...") {
		t.Fatal("loading screen expected before settings load")
	}
	if _, cmd := press(t, m, "s"); cmd != nil {
		t.Fatal("commands must wait for the settings load")
	}
}

func TestSettingsVersionDrivesRedraw(t *testing.T) {
	m, h := newHarness(t)
	m, _ = press(t, m, "tab")

	// An edit that did not go through the terms panel.
	if !h.settings.AddThreshold("psp", "60") {
		t.Fatal("AddThreshold rejected a valid term")
	}
	if strings.Contains(m.termsPanel.viewport.View(), "PSP") {
		t.Fatal("terms redrawn before any message")
	}

	m, _ = press(t, m, "j")
	if m.settingsVersion != h.settings.Version() {
		t.Fatalf("settingsVersion = %d, want %d", m.settingsVersion, h.settings.Version())
	}
	if !strings.Contains(m.termsPanel.viewport.View(), "PSP") {
		t.Fatal("terms list should pick up the new settings version")
	}
}
