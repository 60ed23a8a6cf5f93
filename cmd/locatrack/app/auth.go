package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"locatrack.io/locatrack/cmd/locatrack/app/options"
	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/render"
)

func newLoginCmd(opts *options.CliOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the LocaTrack backend and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)

			result := env.store.Login(cmd.Context(), email, password)
			if !result.Success {
				return fmt.Errorf("%s", result.Error)
			}

			user, _ := env.store.Identity()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address.")
	cmd.Flags().StringVar(&password, "password", "", "Account password.")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(opts *options.CliOptions) *cobra.Command {
	req := backend.RegisterRequest{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a locateur account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)

			result := env.store.Register(cmd.Context(), req)
			if !result.Success {
				return fmt.Errorf("%s", result.Error)
			}

			user, _ := env.store.Identity()
			fmt.Fprintf(cmd.OutOrStdout(), "Account created; logged in as %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email address.")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password.")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "Full name of the account holder.")
	cmd.Flags().StringVar(&req.CompanyName, "company", "", "Rental company name.")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Contact phone number.")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("full-name")

	return cmd
}

func newLogoutCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			env.store.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(opts *options.CliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newRuntime(opts)
			env.store.Restore(cmd.Context())

			user, ok := env.store.Identity()
			if !ok {
				return fmt.Errorf("not logged in; run `locatrack login` first")
			}

			render.Identity(cmd.OutOrStdout(), user)
			return nil
		},
	}
}
