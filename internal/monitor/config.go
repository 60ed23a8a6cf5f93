package monitor

import (
	"net/http"

	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/messaging"
	"locatrack.io/locatrack/internal/session"
	"locatrack.io/locatrack/internal/track"
	"locatrack.io/locatrack/pkg/options"
)

type Config struct {
	BackendOptions *options.BackendOptions
	HttpOptions    *options.HttpOptions
	PollOptions    *options.PollOptions
}

func (cfg *Config) NewMonitor() (*Monitor, error) {
	client := backend.New(cfg.BackendOptions)
	tokens := session.NewTokenFile(cfg.BackendOptions.TokenPath())

	m := &Monitor{
		store:   session.NewStore(client, tokens),
		tracker: track.NewTracker(client, cfg.PollOptions.GPSInterval),
		inbox:   messaging.NewInbox(client),
		poll:    cfg.PollOptions,
	}
	m.http = &http.Server{
		Addr:         cfg.HttpOptions.Addr,
		Handler:      m.newHTTPHandler(),
		ReadTimeout:  cfg.HttpOptions.Timeout,
		WriteTimeout: cfg.HttpOptions.Timeout,
	}

	return m, nil
}
