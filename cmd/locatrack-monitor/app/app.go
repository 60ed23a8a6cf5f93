package app

import (
	"fmt"

	"locatrack.io/locatrack/cmd/locatrack-monitor/app/options"
	"locatrack.io/locatrack/pkg/app"
	"locatrack.io/locatrack/pkg/log"
)

const (
	commandName = "locatrack-monitor"
	commandDesc = `The LocaTrack monitor keeps a headless session against the LocaTrack
backend. It polls the tracked-object snapshot and the messaging inbox on
the configured intervals and exposes state, health and metrics on a local
HTTP endpoint.`
)

func NewApp() *app.App {
	opts := options.NewMonitorOptions()
	application := app.NewApp(
		commandName,
		"Launch the LocaTrack background monitor",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.MonitorOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)
		defer log.Flush()

		ctx := app.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		m, err := cfg.NewMonitor()
		if err != nil {
			return fmt.Errorf("failed to create monitor: %w", err)
		}

		// Interval changes in the config file take effect without a
		// restart.
		app.OnConfigChange(func() {
			m.ApplyIntervals(ctx)
		})

		return m.Run(ctx)
	}
}
