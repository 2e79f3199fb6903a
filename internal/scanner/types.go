package scanner

import (
	"slices"
	"strings"
	"time"
)

const clockLayout = "15:04:05"

// Settings mirrors the payload of GET/POST /settings.
type Settings struct {
	Platforms     Toggles    `json:"platforms"`
	ZipCode       string     `json:"zip_code"`
	Distance      int        `json:"distance"`
	CheckInterval int        `json:"check_interval"`
	Thresholds    Thresholds `json:"thresholds"`
	AIDetection   bool       `json:"ai_detection"`
	// DescriptionScan is only sent back when the backend reported it.
	DescriptionScan *bool `json:"description_scan,omitempty"`
	Strictness      int   `json:"strictness"`
}

// Clone returns a copy that shares nothing mutable with s.
func (s Settings) Clone() Settings {
	out := s
	if s.DescriptionScan != nil {
		v := *s.DescriptionScan
		out.DescriptionScan = &v
	}
	return out
}

// Equal reports whether two settings values are identical, including the order
// of platforms and thresholds.
func (s Settings) Equal(o Settings) bool {
	if s.ZipCode != o.ZipCode ||
		s.Distance != o.Distance ||
		s.CheckInterval != o.CheckInterval ||
		s.AIDetection != o.AIDetection ||
		s.Strictness != o.Strictness {
		return false
	}
	if (s.DescriptionScan == nil) != (o.DescriptionScan == nil) {
		return false
	}
	if s.DescriptionScan != nil && *s.DescriptionScan != *o.DescriptionScan {
		return false
	}
	return s.Platforms.Equal(o.Platforms) && s.Thresholds.Equal(o.Thresholds)
}

// StrictnessLabel returns the display label for a strictness level.
func StrictnessLabel(level int) string {
	switch level {
	case 1:
		return "LENIENT"
	case 2:
		return "MEDIUM"
	case 3:
		return "STRICT"
	default:
		return "UNKNOWN"
	}
}

// Known values of Status.State. The set is open; unknown states are displayed
// with a neutral color.
const (
	StateStopped = "stopped"
	StateRunning = "running"
	StateError   = "error"
	StatePaused  = "paused"
)

// Status mirrors the payload of GET /status. The backend echoes more fields
// (its settings among them); they are ignored.
type Status struct {
	Running           bool       `json:"running"`
	State             string     `json:"status"`
	ItemsScannedToday int        `json:"items_scanned_today"`
	MatchesFoundToday int        `json:"matches_found_today"`
	RecentActivity    []Activity `json:"recent_activity"`
	LastCheck         string     `json:"last_check"`
}

// Clone returns a copy with its own activity slice.
func (s Status) Clone() Status {
	out := s
	out.RecentActivity = slices.Clone(s.RecentActivity)
	return out
}

// Activity kinds after normalization.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

// Activity is one entry of the backend's recent activity log.
type Activity struct {
	Time    string `json:"time"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// Kind folds Type into success, error or info. The backend omits type for
// plain progress lines.
func (a Activity) Kind() string {
	switch strings.ToLower(strings.TrimSpace(a.Type)) {
	case KindSuccess:
		return KindSuccess
	case KindError:
		return KindError
	default:
		return KindInfo
	}
}

// Ack is the acknowledgement returned by write endpoints.
type Ack struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
}

// ParseClock interprets an HH:MM:SS wall-clock value as a time on the same
// calendar day and in the same location as day.
func ParseClock(value string, day time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse(clockLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location()), true
}
