// Package poll implements the timer-driven refresh loop shared by the GPS
// and messaging views.
//
// The contract: one active timer per controller, restart cancels the
// previous schedule first, the immediate fetch is loud, scheduled ticks are
// silent. Overlapping responses are tolerated because consumers replace
// their state wholesale on every fetch (last write wins).
package poll

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"locatrack.io/locatrack/internal/pkg/metrics"
	"locatrack.io/locatrack/pkg/log"
)

// FetchFunc refreshes the consumer's local state from the backend.
type FetchFunc func(ctx context.Context) error

// Controller owns a single refresh timer. All methods are safe for
// concurrent use.
type Controller struct {
	name   string
	logger log.Logger
	clock  clock.WithTicker

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a controller driven by the wall clock. The name labels logs
// and metrics.
func New(name string) *Controller {
	return NewWithClock(name, clock.RealClock{})
}

// NewWithClock creates a controller with an injected clock, used by tests
// to advance time deterministically.
func NewWithClock(name string, c clock.WithTicker) *Controller {
	return &Controller{
		name:   name,
		logger: log.WithName("poll").WithValues("target", name),
		clock:  c,
	}
}

// Start performs one immediate fetch and schedules repeats every interval.
// Any previously active schedule is cancelled first, so calling Start again
// is an idempotent restart and never stacks timers.
//
// The immediate fetch's error is returned so the caller can surface it; the
// scheduled ticks that follow swallow failures so a transient blip does not
// nag the user every interval.
func (c *Controller) Start(ctx context.Context, interval time.Duration, fetch FetchFunc) error {
	tickCtx := c.rearm(ctx)

	// The schedule exists before the immediate fetch runs: once a caller
	// has observed the first fetch, the timer is guaranteed live.
	ticker := c.clock.NewTicker(interval)

	err := fetch(tickCtx)
	c.observe(err)

	go c.run(tickCtx, ticker, fetch)

	return err
}

// Stop cancels the active schedule. It is safe to call when no timer is
// active, and in-flight fetches are not aborted; only future ticks are.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) rearm(ctx context.Context) context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	tickCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	return tickCtx
}

func (c *Controller) run(ctx context.Context, ticker clock.Ticker, fetch FetchFunc) {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			// A cancelled schedule may still have a tick in flight;
			// never fetch past Stop.
			if ctx.Err() != nil {
				return
			}

			err := fetch(ctx)
			c.observe(err)
			if err != nil {
				c.logger.Debug("scheduled refresh failed", "err", err)
			}
		}
	}
}

func (c *Controller) observe(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	metrics.PollTicksTotal.WithLabelValues(c.name, result).Inc()
}
