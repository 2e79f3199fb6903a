package settings

import (
	"slices"
	"strings"

	"github.com/pixelflip/scanboard/internal/scanner"
)

// Valid field domains.
const (
	MinDistance  = 5
	MaxDistance  = 100
	DistanceStep = 5

	MinStrictness = 1
	MaxStrictness = 3
)

// Intervals lists the allowed check intervals in minutes.
var Intervals = []int{5, 10, 15, 30}

// DefaultSettings is the seed shown until the backend answers, and kept when
// it never does.
func DefaultSettings() scanner.Settings {
	return scanner.Settings{
		Platforms: scanner.Toggles{}.
			With("craigslist", true).
			With("offerup", true).
			With("mercari", true),
		ZipCode:       "95212",
		Distance:      25,
		CheckInterval: 10,
		Thresholds: scanner.Thresholds{}.
			With("gameboy", 30).
			With("gba sp", 80).
			With("nintendo ds", 30).
			With("3ds", 110),
		AIDetection: true,
		Strictness:  2,
	}
}

// TogglePlatform flips an existing platform. Unknown names are ignored.
func (s *Store) TogglePlatform(name string) bool {
	_, ok := s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		enabled, found := cur.Platforms.Get(name)
		if !found {
			return Patch{}, false
		}
		next := cur.Platforms.With(name, !enabled)
		return Patch{Platforms: &next}, true
	})
	return ok
}

// SetZipCode commits a trimmed zip code when it differs from the current one.
func (s *Store) SetZipCode(zip string) bool {
	zip = strings.TrimSpace(zip)
	_, ok := s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		if cur.ZipCode == zip {
			return Patch{}, false
		}
		return Patch{ZipCode: &zip}, true
	})
	return ok
}

// StepDistance moves the search radius one step in the direction of dir.
func (s *Store) StepDistance(dir int) bool {
	_, ok := s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		next := clampDistance(snapDistance(cur.Distance) + sign(dir)*DistanceStep)
		if next == cur.Distance {
			return Patch{}, false
		}
		return Patch{Distance: &next}, true
	})
	return ok
}

// CycleInterval moves to the next (dir > 0) or previous allowed interval,
// wrapping at either end.
func (s *Store) CycleInterval(dir int) bool {
	_, ok := s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		next := cycleInterval(cur.CheckInterval, dir)
		if next == cur.CheckInterval {
			return Patch{}, false
		}
		return Patch{CheckInterval: &next}, true
	})
	return ok
}

// ToggleAIDetection flips AI image detection.
func (s *Store) ToggleAIDetection() {
	s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		next := !cur.AIDetection
		return Patch{AIDetection: &next}, true
	})
}

// ToggleDescriptionScan flips description scanning. It is only available
// when the backend reported the field.
func (s *Store) ToggleDescriptionScan() bool {
	_, ok := s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		if cur.DescriptionScan == nil {
			return Patch{}, false
		}
		next := !*cur.DescriptionScan
		return Patch{DescriptionScan: &next}, true
	})
	return ok
}

// StepStrictness raises or lowers strictness within 1..3.
func (s *Store) StepStrictness(dir int) bool {
	_, ok := s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		next := min(max(cur.Strictness+sign(dir), MinStrictness), MaxStrictness)
		if next == cur.Strictness {
			return Patch{}, false
		}
		return Patch{Strictness: &next}, true
	})
	return ok
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func snapDistance(v int) int {
	return (v + DistanceStep/2) / DistanceStep * DistanceStep
}

func clampDistance(v int) int {
	return min(max(v, MinDistance), MaxDistance)
}

func cycleInterval(current, dir int) int {
	idx := slices.Index(Intervals, current)
	if idx < 0 {
		// Off-list values land on the nearest allowed entry at or above them.
		idx = len(Intervals) - 1
		for i, v := range Intervals {
			if v >= current {
				idx = i
				break
			}
		}
		return Intervals[idx]
	}
	n := len(Intervals)
	return Intervals[((idx+sign(dir))%n+n)%n]
}
