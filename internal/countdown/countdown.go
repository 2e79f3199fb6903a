package countdown

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pixelflip/scanboard/internal/scanner"
)

// Sentinel is shown while the scanner is idle or has not checked yet.
const Sentinel = "--:--"

// Period is the recompute cadence.
const Period = time.Second

// rolloverSlack decides when a clock reading belongs to yesterday: a
// last_check more than this far ahead of now happened before midnight.
const rolloverSlack = 12 * time.Hour

// Format returns the time left until the next scan as M:SS, or Sentinel when
// not running or lastCheck is missing or malformed. The result never goes
// below 0:00.
func Format(running bool, lastCheck string, intervalMinutes int, now time.Time) string {
	if !running {
		return Sentinel
	}
	last, ok := scanner.ParseClock(lastCheck, now)
	if !ok {
		return Sentinel
	}
	if last.Sub(now) > rolloverSlack {
		last = last.AddDate(0, 0, -1)
	}
	next := last.Add(time.Duration(intervalMinutes) * time.Minute)
	remaining := max(next.Sub(now), 0)

	secs := int(remaining / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// TickMsg drives one recompute. Ticks from a superseded chain are ignored.
type TickMsg struct {
	tag int
}

// Model is the Bubble Tea component that keeps the countdown text current.
type Model struct {
	running   bool
	lastCheck string
	interval  int

	tag  int
	text string
	now  func() time.Time
}

// New returns an idle countdown showing Sentinel.
func New() Model {
	return Model{text: Sentinel, now: time.Now}
}

// WithClock replaces the time source.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	m.text = m.compute()
	return m
}

// SetSource feeds the inputs the countdown is derived from. When they change
// a fresh tick chain starts (or, when idle, the old chain is dropped).
func (m Model) SetSource(running bool, lastCheck string, intervalMinutes int) (Model, tea.Cmd) {
	if m.running == running && m.lastCheck == lastCheck && m.interval == intervalMinutes {
		return m, nil
	}
	wasActive := m.active()
	m.running = running
	m.lastCheck = lastCheck
	m.interval = intervalMinutes
	m.text = m.compute()

	if !m.active() {
		m.tag++
		return m, nil
	}
	if wasActive {
		// The live chain picks up the new inputs on its next tick.
		return m, nil
	}
	m.tag++
	return m, m.tick()
}

// Update handles TickMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.tag != m.tag || !m.active() {
		return m, nil
	}
	m.text = m.compute()
	return m, m.tick()
}

// View returns the current countdown text.
func (m Model) View() string {
	return m.text
}

// Active reports whether the countdown is ticking.
func (m Model) Active() bool {
	return m.active()
}

func (m Model) active() bool {
	return m.running && m.lastCheck != ""
}

func (m Model) compute() string {
	now := time.Now
	if m.now != nil {
		now = m.now
	}
	return Format(m.running, m.lastCheck, m.interval, now())
}

func (m Model) tick() tea.Cmd {
	tag := m.tag
	return tea.Tick(Period, func(time.Time) tea.Msg {
		return TickMsg{tag: tag}
	})
}
