package settings

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pixelflip/scanboard/internal/scanner"
)

// Patch is a shallow, top-level change set. Nil fields are left alone; map
// fields replace the whole map, so callers rebuild them with With/Without.
type Patch struct {
	Platforms       *scanner.Toggles
	ZipCode         *string
	Distance        *int
	CheckInterval   *int
	Thresholds      *scanner.Thresholds
	AIDetection     *bool
	DescriptionScan *bool
	Strictness      *int
}

func (p Patch) apply(s scanner.Settings) scanner.Settings {
	out := s.Clone()
	if p.Platforms != nil {
		out.Platforms = *p.Platforms
	}
	if p.ZipCode != nil {
		out.ZipCode = *p.ZipCode
	}
	if p.Distance != nil {
		out.Distance = *p.Distance
	}
	if p.CheckInterval != nil {
		out.CheckInterval = *p.CheckInterval
	}
	if p.Thresholds != nil {
		out.Thresholds = *p.Thresholds
	}
	if p.AIDetection != nil {
		out.AIDetection = *p.AIDetection
	}
	if p.DescriptionScan != nil {
		v := *p.DescriptionScan
		out.DescriptionScan = &v
	}
	if p.Strictness != nil {
		out.Strictness = *p.Strictness
	}
	return out
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save outcomes.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithContext sets the context background saves run under. Cancelling it
// aborts in-flight saves.
func WithContext(ctx context.Context) Option {
	return func(s *Store) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// Store holds the committed settings. Every edit commits locally first and is
// then saved to the backend on its own goroutine; failed saves are logged and
// never rolled back.
type Store struct {
	backend scanner.SettingsAPI
	log     logrus.FieldLogger
	ctx     context.Context

	mu      sync.Mutex
	current scanner.Settings
	ready   bool
	version uint64

	writes sync.WaitGroup
}

// New returns a Store seeded with seed. The store is not ready until Load
// returns.
func New(backend scanner.SettingsAPI, seed scanner.Settings, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     logrus.StandardLogger(),
		ctx:     context.Background(),
		current: seed.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "settings")
	return s
}

// Load reads settings from the backend once. The store becomes ready whether
// or not the read succeeds; on failure the seed stays in place and the error
// is returned for information only.
func (s *Store) Load(ctx context.Context) error {
	fetched, err := s.backend.FetchSettings(ctx)

	s.mu.Lock()
	if err == nil && !fetched.Equal(s.current) {
		s.current = fetched
		s.version++
	}
	s.ready = true
	s.mu.Unlock()

	if err != nil {
		s.log.WithError(err).WithField("op", "load").Warn("settings load failed, keeping defaults")
		return err
	}
	s.log.WithFields(logrus.Fields{
		"op":         "load",
		"platforms":  fetched.Platforms.Len(),
		"thresholds": fetched.Thresholds.Len(),
	}).Info("settings loaded")
	return nil
}

// Ready reports whether Load has finished.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Settings returns a copy of the committed settings.
func (s *Store) Settings() scanner.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Version increases on every commit.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Update merges p over the committed settings, commits the result and saves
// it in the background. It returns the committed value.
func (s *Store) Update(p Patch) scanner.Settings {
	next, _ := s.UpdateWith(func(scanner.Settings) (Patch, bool) { return p, true })
	return next
}

// UpdateWith computes a patch from the latest committed settings while holding
// the store lock, so edits issued back to back never merge over a stale value.
// Returning false from fn leaves the store untouched and skips the save.
func (s *Store) UpdateWith(fn func(current scanner.Settings) (Patch, bool)) (scanner.Settings, bool) {
	s.mu.Lock()
	p, ok := fn(s.current.Clone())
	if !ok {
		out := s.current.Clone()
		s.mu.Unlock()
		return out, false
	}
	s.current = p.apply(s.current)
	s.version++
	committed := s.current.Clone()
	s.mu.Unlock()

	s.save(committed)
	return committed, true
}

// Wait blocks until every background save has finished.
func (s *Store) Wait() {
	s.writes.Wait()
}

// save submits its own copy of snapshot, so nothing the caller holds is
// shared with the request body.
func (s *Store) save(snapshot scanner.Settings) {
	snapshot = snapshot.Clone()
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		ack, err := s.backend.SaveSettings(s.ctx, snapshot)
		if err != nil {
			s.log.WithError(err).WithField("op", "save").Warn("settings save failed")
			return
		}
		s.log.WithFields(logrus.Fields{"op": "save", "success": ack.Success}).Debug("settings saved")
	}()
}

// AddThreshold stores term with a maximum price. The term is trimmed and
// lower-cased; price must parse as a positive base-10 integer. Invalid input
// changes nothing and reports false.
func (s *Store) AddThreshold(term, price string) bool {
	key, ok := NormalizeTerm(term)
	if !ok {
		return false
	}
	value, ok := ParsePrice(price)
	if !ok {
		return false
	}
	_, ok = s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		next := cur.Thresholds.With(key, value)
		return Patch{Thresholds: &next}, true
	})
	return ok
}

// RemoveThreshold drops term. Removing an absent term is a silent no-op and
// issues no save.
func (s *Store) RemoveThreshold(term string) {
	s.UpdateWith(func(cur scanner.Settings) (Patch, bool) {
		if !cur.Thresholds.Has(term) {
			return Patch{}, false
		}
		next := cur.Thresholds.Without(term)
		return Patch{Thresholds: &next}, true
	})
}

// NormalizeTerm trims and lower-cases a search term. ok is false for an empty
// result.
func NormalizeTerm(term string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(term))
	return key, key != ""
}

// ParsePrice parses a positive whole-dollar price.
func ParsePrice(price string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(price))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
