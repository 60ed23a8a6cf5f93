// Package monitor implements the locatrack-monitor daemon: a headless
// session that keeps the GPS snapshot and the inbox fresh and exposes
// them over a local HTTP endpoint.
package monitor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"locatrack.io/locatrack/internal/messaging"
	"locatrack.io/locatrack/internal/session"
	"locatrack.io/locatrack/internal/track"
	"locatrack.io/locatrack/pkg/log"
	"locatrack.io/locatrack/pkg/options"
)

type Monitor struct {
	store   *session.Store
	tracker *track.Tracker
	inbox   *messaging.Inbox
	http    *http.Server
	poll    *options.PollOptions
}

// Run restores the saved session and fans out the pollers and the HTTP
// server. It blocks until ctx is cancelled or a component fails.
func (m *Monitor) Run(ctx context.Context) error {
	m.store.Restore(ctx)
	user, ok := m.store.Identity()
	if !ok {
		return fmt.Errorf("no valid session; run `locatrack login` first")
	}
	log.Info("session restored", "email", user.Email, "role", string(user.Role))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.tracker.Start(ctx)
	})

	g.Go(func() error {
		return m.inbox.Start(ctx, m.poll.MessageInterval)
	})

	g.Go(func() error {
		return m.runHTTPServer(ctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("locatrack-monitor stopped gracefully")
	return nil
}

// ApplyIntervals restarts the polling schedules from the current option
// values. Called when the configuration file changes on disk.
func (m *Monitor) ApplyIntervals(ctx context.Context) {
	m.tracker.SetInterval(ctx, m.poll.GPSInterval)
	m.inbox.SetInterval(ctx, m.poll.MessageInterval)
}

func (m *Monitor) runHTTPServer(ctx context.Context) error {
	log.Info("locatrack-monitor HTTP listening", "address", m.http.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		m.http.Shutdown(shutdownCtx)
	}()

	if err := m.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start monitor server: %w", err)
	}

	return nil
}
