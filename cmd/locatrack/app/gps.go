package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"locatrack.io/locatrack/cmd/locatrack/app/options"
	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/guard"
	"locatrack.io/locatrack/internal/render"
	"locatrack.io/locatrack/internal/track"
	"locatrack.io/locatrack/pkg/app"
)

func newGPSCmd(opts *options.CliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gps",
		Short: "Follow live GPS positions of tracked vehicles",
	}

	cmd.AddCommand(newGPSListCmd(opts), newGPSShowCmd(opts), newGPSWatchCmd(opts))

	return cmd
}

func newGPSListCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the current tracked-object snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenGPS); err != nil {
				return err
			}

			objects, err := env.client.GPSObjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			render.TrackedObjects(cmd.OutOrStdout(), objects, time.Now())
			return nil
		},
	}
}

func newGPSShowCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show IMEI",
		Short: "Print one device's full telemetry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenGPS); err != nil {
				return err
			}

			locations, err := env.client.GPSLocations(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			for i := range locations {
				if locations[i].IMEI == args[0] {
					render.TrackedObjectDetail(cmd.OutOrStdout(), &locations[i], time.Now())
					return nil
				}
			}

			return fmt.Errorf("no tracked object with IMEI %q", args[0])
		},
	}
}

func newGPSWatchCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the snapshot and reprint it on every refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			ctx := app.SetupSignalContext()

			if _, err := env.requireScreen(ctx, guard.ScreenGPS); err != nil {
				return err
			}

			interval := opts.PollOptions.GPSInterval
			tracker := track.NewTracker(env.client, interval)
			go tracker.Start(ctx)

			out := cmd.OutOrStdout()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				render.TrackedObjects(out, tracker.Snapshot(), time.Now())

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}
