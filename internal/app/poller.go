package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pixelflip/scanboard/internal/scanner"
	"github.com/pixelflip/scanboard/internal/state"
)

const defaultPollInterval = 2 * time.Second

// Poller fetches status on a fixed cadence and offers each result to the
// store. Failed polls are logged and leave the display alone; the next tick
// is the only retry.
type Poller struct {
	fetcher  scanner.StatusFetcher
	store    *state.Store
	log      logrus.FieldLogger
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller returns an idle poller. A non-positive interval uses the 2s default.
func NewPoller(fetcher scanner.StatusFetcher, store *state.Store, log logrus.FieldLogger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		log:      log.WithField("component", "poller"),
		interval: interval,
	}
}

// Start launches the polling goroutine and returns immediately. The first
// fetch happens one full interval after Start. Calling Start on a running
// poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// Stop cancels polling and waits for the goroutine to exit. It is safe to call
// more than once and before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) poll(ctx context.Context) {
	status, err := p.fetcher.FetchStatus(ctx)
	if ctx.Err() != nil {
		// Stopped while the request was in flight.
		return
	}
	if err != nil {
		p.log.WithError(err).Warn("status poll failed")
		return
	}
	if p.store.Offer(status) {
		p.log.WithFields(logrus.Fields{
			"state":   status.State,
			"items":   status.ItemsScannedToday,
			"matches": status.MatchesFoundToday,
		}).Debug("status changed")
	}
}
