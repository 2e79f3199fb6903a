package settings

import (
	"testing"

	"github.com/pixelflip/scanboard/internal/scanner"
)

func TestStepDistance_ClampsToRange(t *testing.T) {
	tests := []struct {
		start, dir, want int
		changed          bool
	}{
		{25, 1, 30, true},
		{25, -1, 20, true},
		{100, 1, 100, false},
		{5, -1, 5, false},
		{23, 1, 30, true},
		{0, -1, 5, true},
	}
	for _, tt := range tests {
		seed := DefaultSettings()
		seed.Distance = tt.start
		backend := &fakeBackend{}
		store := New(backend, seed)

		if got := store.StepDistance(tt.dir); got != tt.changed {
			t.Fatalf("StepDistance(%d) from %d changed=%v, want %v", tt.dir, tt.start, got, tt.changed)
		}
		store.Wait()
		if got := store.Settings().Distance; got != tt.want {
			t.Fatalf("distance from %d dir %d = %d, want %d", tt.start, tt.dir, got, tt.want)
		}
		if !tt.changed && len(backend.saves()) != 0 {
			t.Fatalf("unchanged distance still saved")
		}
	}
}

func TestCycleInterval(t *testing.T) {
	tests := []struct{ start, dir, want int }{
		{5, 1, 10},
		{10, 1, 15},
		{15, 1, 30},
		{30, 1, 5},
		{5, -1, 30},
		{12, 1, 15},
		{45, 1, 30},
	}
	for _, tt := range tests {
		if got := cycleInterval(tt.start, tt.dir); got != tt.want {
			t.Fatalf("cycleInterval(%d, %d) = %d, want %d", tt.start, tt.dir, got, tt.want)
		}
	}
}

func TestStepStrictness(t *testing.T) {
	store := New(&fakeBackend{}, DefaultSettings())

	store.StepStrictness(1)
	if store.StepStrictness(1) {
		t.Fatalf("strictness stepped past the maximum")
	}
	store.Wait()
	if got := store.Settings().Strictness; got != MaxStrictness {
		t.Fatalf("strictness = %d, want %d", got, MaxStrictness)
	}
	store.StepStrictness(-1)
	store.StepStrictness(-1)
	if store.StepStrictness(-1) {
		t.Fatalf("strictness stepped past the minimum")
	}
	store.Wait()
	if got := store.Settings().Strictness; got != MinStrictness {
		t.Fatalf("strictness = %d, want %d", got, MinStrictness)
	}
}

func TestTogglePlatform_OnlyKnownKeys(t *testing.T) {
	backend := &fakeBackend{}
	store := New(backend, DefaultSettings())

	if store.TogglePlatform("ebay") {
		t.Fatalf("toggled a platform the backend never reported")
	}
	if !store.TogglePlatform("offerup") {
		t.Fatalf("failed to toggle offerup")
	}
	store.Wait()

	if on, _ := store.Settings().Platforms.Get("offerup"); on {
		t.Fatalf("offerup still enabled")
	}
	if got := store.Settings().Platforms.Keys(); len(got) != 3 || got[1] != "offerup" {
		t.Fatalf("platform order changed: %v", got)
	}
	if len(backend.saves()) != 1 {
		t.Fatalf("saves = %d, want 1", len(backend.saves()))
	}
}

func TestSetZipCode_SkipsUnchanged(t *testing.T) {
	backend := &fakeBackend{}
	store := New(backend, DefaultSettings())

	if store.SetZipCode(" 95212 ") {
		t.Fatalf("unchanged zip reported as an edit")
	}
	if !store.SetZipCode("73301") {
		t.Fatalf("new zip rejected")
	}
	store.Wait()
	if got := store.Settings().ZipCode; got != "73301" {
		t.Fatalf("zip = %q, want 73301", got)
	}
	if len(backend.saves()) != 1 {
		t.Fatalf("saves = %d, want 1", len(backend.saves()))
	}
}

func TestToggleDescriptionScan_RequiresBackendField(t *testing.T) {
	store := New(&fakeBackend{}, DefaultSettings())
	if store.ToggleDescriptionScan() {
		t.Fatalf("toggled description scan without a backend value")
	}

	off := false
	seed := DefaultSettings()
	seed.DescriptionScan = &off
	store = New(&fakeBackend{}, seed)
	if !store.ToggleDescriptionScan() {
		t.Fatalf("description scan toggle rejected")
	}
	store.Wait()
	if v := store.Settings().DescriptionScan; v == nil || !*v {
		t.Fatalf("description scan = %v, want true", v)
	}
}

func TestToggleAIDetection(t *testing.T) {
	store := New(&fakeBackend{}, scanner.Settings{AIDetection: true})
	store.ToggleAIDetection()
	store.Wait()
	if store.Settings().AIDetection {
		t.Fatalf("AI detection still enabled")
	}
}
