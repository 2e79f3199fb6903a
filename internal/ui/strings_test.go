package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"gameboy", 10, "gameboy"},
		{"  gameboy  ", 7, "gameboy"},
		{"nintendo ds lite", 10, "nintend..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ZIP", 6); got != "ZIP   " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("DISTANCE", 4); got != "DISTANCE" {
		t.Fatalf("padRight longer = %q", got)
	}
}

func TestFormatters(t *testing.T) {
	if got := formatPrice(1250); got != "$1,250" {
		t.Fatalf("formatPrice = %q", got)
	}
	if got := formatCount(1234567); got != "1,234,567" {
		t.Fatalf("formatCount = %q", got)
	}
	if checkbox(true) != "[x]" || checkbox(false) != "[ ]" {
		t.Fatal("checkbox markers changed")
	}
}

func TestPanelCycle(t *testing.T) {
	p := panelSettings
	seen := []string{}
	for range 3 {
		seen = append(seen, p.String())
		p = p.next()
	}
	if p != panelSettings {
		t.Fatalf("next did not wrap, got %v", p)
	}
	if seen[0] != "settings" || seen[1] != "terms" || seen[2] != "console" {
		t.Fatalf("order = %v", seen)
	}
	if panelSettings.prev() != panelConsole {
		t.Fatal("prev from settings should wrap to console")
	}
	for _, name := range seen {
		if parsePanel(name).String() != name {
			t.Fatalf("parsePanel(%q) round trip failed", name)
		}
	}
	if parsePanel("bogus") != panelSettings {
		t.Fatal("unknown panel should focus settings")
	}
}
