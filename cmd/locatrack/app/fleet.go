package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"locatrack.io/locatrack/cmd/locatrack/app/options"
	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/guard"
	"locatrack.io/locatrack/internal/render"
)

func newFleetCmd(opts *options.CliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Inspect the vehicle fleet",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the tenant's vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			if _, err := env.requireScreen(cmd.Context(), guard.ScreenFleet); err != nil {
				return err
			}

			vehicles, err := env.client.Vehicles(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", backend.FormatError(err))
			}

			render.Vehicles(cmd.OutOrStdout(), vehicles)
			return nil
		},
	})

	return cmd
}
