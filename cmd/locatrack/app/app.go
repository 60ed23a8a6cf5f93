// Package app assembles the locatrack command tree.
package app

import (
	"context"
	"fmt"

	"locatrack.io/locatrack/cmd/locatrack/app/options"
	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/guard"
	"locatrack.io/locatrack/internal/session"
	"locatrack.io/locatrack/pkg/app"
	"locatrack.io/locatrack/pkg/log"
)

const (
	commandName = "locatrack"
	commandDesc = `locatrack is the command-line client for the LocaTrack vehicle-rental
platform: manage your session, inspect the fleet, follow live GPS
positions and read or send messages.`
)

func NewApp() *app.App {
	opts := options.NewCliOptions()
	application := app.NewApp(
		commandName,
		"LocaTrack fleet management client",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
	)

	application.AddCommand(
		newLoginCmd(opts),
		newRegisterCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newFleetCmd(opts),
		newGPSCmd(opts),
		newMsgCmd(opts),
	)

	return application
}

// runtimeEnv holds the per-invocation wiring shared by all subcommands.
type runtimeEnv struct {
	opts   *options.CliOptions
	client *backend.Client
	store  *session.Store
}

func newRuntime(opts *options.CliOptions) *runtimeEnv {
	log.Init(opts.Log)

	client := backend.New(opts.BackendOptions)
	tokens := session.NewTokenFile(opts.BackendOptions.TokenPath())

	return &runtimeEnv{
		opts:   opts,
		client: client,
		store:  session.NewStore(client, tokens),
	}
}

// requireScreen restores the saved session and resolves access to the
// screen backing this command. The returned user is never nil on success.
func (e *runtimeEnv) requireScreen(ctx context.Context, screen guard.Screen) (*backend.User, error) {
	e.store.Restore(ctx)

	decision := guard.Resolve(e.store.Snapshot(), screen)
	if decision.Render() {
		user, _ := e.store.Identity()
		return user, nil
	}

	if decision.Redirect == guard.PathLogin {
		return nil, fmt.Errorf("not logged in; run `locatrack login` first")
	}

	user, _ := e.store.Identity()
	return nil, fmt.Errorf("the %s screen is not available to role %q", screen, user.Role)
}
