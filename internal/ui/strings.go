package ui

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// formatCount renders a counter with thousands separators.
func formatCount(n int) string {
	return humanize.Comma(int64(n))
}

// formatPrice renders a whole-dollar threshold.
func formatPrice(n int) string {
	return "$" + humanize.Comma(int64(n))
}

// checkbox renders an on/off marker.
func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
