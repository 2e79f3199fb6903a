package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/pixelflip/scanboard/internal/scanner"
	"github.com/pixelflip/scanboard/internal/state"
)

type fakeFetcher struct {
	mu     sync.Mutex
	calls  atomic.Int32
	status scanner.Status
	err    error

	// gate, when set, blocks each fetch until it is closed.
	gate chan struct{}
}

func (f *fakeFetcher) FetchStatus(ctx context.Context) (scanner.Status, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status.Clone(), f.err
}

func (f *fakeFetcher) set(status scanner.Status, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.err = err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestPoller_FirstFetchWaitsOnePeriod(t *testing.T) {
	fetcher := &fakeFetcher{status: scanner.Status{ItemsScannedToday: 1}}
	store := state.NewStore(scanner.Status{})
	p := NewPoller(fetcher, store, logrus.New(), 200*time.Millisecond)

	p.Start(context.Background())
	defer p.Stop()

	time.Sleep(50 * time.Millisecond)
	if n := fetcher.calls.Load(); n != 0 {
		t.Fatalf("fetches before first period = %d, want 0", n)
	}
	if store.Snapshot().Version != 0 {
		t.Fatalf("store updated before first period")
	}
	waitFor(t, func() bool { return store.Snapshot().Version == 1 })
}

func TestPoller_FailureLeavesDisplayAndLogs(t *testing.T) {
	seed := scanner.Status{State: scanner.StateStopped, ItemsScannedToday: 9}
	fetcher := &fakeFetcher{err: scanner.ErrCallFailed}
	store := state.NewStore(seed)
	logger, hook := test.NewNullLogger()
	p := NewPoller(fetcher, store, logger, 10*time.Millisecond)

	p.Start(context.Background())
	waitFor(t, func() bool { return fetcher.calls.Load() >= 2 })
	p.Stop()

	snap := store.Snapshot()
	if snap.Version != 0 || snap.Status.ItemsScannedToday != 9 {
		t.Fatalf("failed poll changed display: %#v", snap)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel || entry.Data["component"] != "poller" {
		t.Fatalf("expected poll warning, got %#v", entry)
	}
}

func TestPoller_RecoversOnNextTick(t *testing.T) {
	fetcher := &fakeFetcher{err: scanner.ErrCallFailed}
	store := state.NewStore(scanner.Status{})
	p := NewPoller(fetcher, store, logrus.New(), 10*time.Millisecond)

	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return fetcher.calls.Load() >= 1 })
	fetcher.set(scanner.Status{Running: true, State: scanner.StateRunning}, nil)
	waitFor(t, func() bool { return store.Snapshot().Status.Running })
}

func TestPoller_DiscardsResponseAfterStop(t *testing.T) {
	fetcher := &fakeFetcher{
		status: scanner.Status{MatchesFoundToday: 5},
		gate:   make(chan struct{}),
	}
	store := state.NewStore(scanner.Status{})
	p := NewPoller(fetcher, store, logrus.New(), 10*time.Millisecond)

	p.Start(context.Background())
	waitFor(t, func() bool { return fetcher.calls.Load() >= 1 })

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	// Let Stop cancel the context before the in-flight fetch returns.
	time.Sleep(20 * time.Millisecond)
	close(fetcher.gate)
	<-stopped

	if store.Snapshot().Version != 0 {
		t.Fatalf("response delivered after Stop was published")
	}
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	p := NewPoller(&fakeFetcher{}, state.NewStore(scanner.Status{}), nil, 0)
	p.Stop()
	p.Start(context.Background())
	p.Stop()
	p.Stop()
	if p.interval != defaultPollInterval {
		t.Fatalf("interval = %v, want default %v", p.interval, defaultPollInterval)
	}
}

func TestPoller_StopsWithParentContext(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := NewPoller(fetcher, state.NewStore(scanner.Status{}), logrus.New(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("poller goroutine did not exit after context cancellation")
	}
}
