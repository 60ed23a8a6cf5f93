package track

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/pkg/metrics"
	"locatrack.io/locatrack/internal/poll"
	"locatrack.io/locatrack/pkg/log"
)

// Tracker keeps the tracked-object snapshot fresh. Each refresh replaces
// the snapshot wholesale, so overlapping or out-of-order responses converge
// on whichever arrived last.
type Tracker struct {
	client     *backend.Client
	logger     log.Logger
	controller *poll.Controller
	clock      clock.WithTicker

	mu          sync.RWMutex
	interval    time.Duration
	objects     []backend.TrackedObject
	refreshedAt time.Time
}

// NewTracker creates a tracker polling at the given interval.
func NewTracker(client *backend.Client, interval time.Duration) *Tracker {
	return newTrackerWithClock(client, interval, clock.RealClock{})
}

func newTrackerWithClock(client *backend.Client, interval time.Duration, c clock.WithTicker) *Tracker {
	return &Tracker{
		client:     client,
		logger:     log.WithName("tracker"),
		controller: poll.NewWithClock("gps", c),
		clock:      c,
		interval:   interval,
	}
}

// Refresh fetches a snapshot once, loudly. This is the user-initiated path;
// callers surface the returned error.
func (t *Tracker) Refresh(ctx context.Context) error {
	return t.fetch(ctx)
}

// Start begins polling and blocks until ctx is cancelled. A failing first
// fetch does not abort the run; the view stays stale until a later tick
// succeeds.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.RLock()
	interval := t.interval
	t.mu.RUnlock()

	if err := t.controller.Start(ctx, interval, t.fetch); err != nil {
		t.logger.Warn("initial GPS refresh failed", "reason", backend.FormatError(err))
	}
	t.logger.Info("GPS polling started", "interval", interval)

	<-ctx.Done()
	t.controller.Stop()

	return nil
}

// SetInterval restarts the polling schedule with a new interval. Safe to
// call while running; the controller's idempotent restart guarantees a
// single live timer.
func (t *Tracker) SetInterval(ctx context.Context, interval time.Duration) {
	t.mu.Lock()
	changed := t.interval != interval
	t.interval = interval
	t.mu.Unlock()

	if !changed {
		return
	}

	t.logger.Info("GPS poll interval changed", "interval", interval)
	if err := t.controller.Start(ctx, interval, t.fetch); err != nil {
		t.logger.Warn("GPS refresh failed on interval change", "reason", backend.FormatError(err))
	}
}

// Stop cancels the polling schedule.
func (t *Tracker) Stop() {
	t.controller.Stop()
}

// Snapshot returns a copy of the latest tracked objects.
func (t *Tracker) Snapshot() []backend.TrackedObject {
	t.mu.RLock()
	defer t.mu.RUnlock()

	objects := make([]backend.TrackedObject, len(t.objects))
	copy(objects, t.objects)

	return objects
}

// RefreshedAt returns when the snapshot was last replaced; zero when no
// fetch has succeeded yet.
func (t *Tracker) RefreshedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.refreshedAt
}

func (t *Tracker) fetch(ctx context.Context) error {
	objects, err := t.client.GPSObjects(ctx)
	if err != nil {
		return err
	}

	now := t.clock.Now()

	t.mu.Lock()
	t.objects = objects
	t.refreshedAt = now
	t.mu.Unlock()

	moving := 0
	for i := range objects {
		if Classify(&objects[i], now) == StatusMoving {
			moving++
		}
	}

	metrics.TrackedObjects.Set(float64(len(objects)))
	metrics.MovingObjects.Set(float64(moving))

	return nil
}
