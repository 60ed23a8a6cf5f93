// Package app builds the cobra command skeleton shared by all binaries:
// flag registration, config file loading, env binding, and option
// validation happen here so each command only supplies its options struct
// and a run function.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"locatrack.io/locatrack/pkg/log"
	"locatrack.io/locatrack/pkg/options"
)

// RunFunc is the callback executed once flags, config and options are
// resolved.
type RunFunc func() error

// App wraps a root cobra command.
type App struct {
	name        string
	shortDesc   string
	description string
	options     options.IOptions
	runFunc     RunFunc
	noConfig    bool
	args        cobra.PositionalArgs
	cmd         *cobra.Command
}

// Option configures an App.
type Option func(*App)

// WithDescription sets the long help text.
func WithDescription(desc string) Option {
	return func(a *App) {
		a.description = desc
	}
}

// WithOptions binds an options struct: its flags are registered on the
// root command and the config file is unmarshalled into it before run.
func WithOptions(opts options.IOptions) Option {
	return func(a *App) {
		a.options = opts
	}
}

// WithRunFunc sets the callback of the root command.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) {
		a.runFunc = run
	}
}

// WithDefaultValidArgs rejects any positional argument on the root
// command.
func WithDefaultValidArgs() Option {
	return func(a *App) {
		a.args = cobra.NoArgs
	}
}

// WithNoConfig disables the --config flag and config file loading.
func WithNoConfig() Option {
	return func(a *App) {
		a.noConfig = true
	}
}

// NewApp creates an App with the given name and short description.
func NewApp(name, shortDesc string, opts ...Option) *App {
	a := &App{
		name:      name,
		shortDesc: shortDesc,
	}
	for _, o := range opts {
		o(a)
	}
	a.buildCommand()

	return a
}

func (a *App) buildCommand() {
	cmd := &cobra.Command{
		Use:           a.name,
		Short:         a.shortDesc,
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          a.args,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = false

	if a.options != nil {
		a.options.AddFlags(cmd.PersistentFlags())

		// Subcommands inherit config loading and validation.
		cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
			return a.applyOptions(c.Root().PersistentFlags())
		}
	}
	if !a.noConfig {
		addConfigFlag(a.name, cmd.PersistentFlags())
	}

	if a.runFunc != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			return a.runFunc()
		}
	}

	a.cmd = cmd
}

// applyOptions merges the config file over defaults, lets explicit flags
// win, then validates.
func (a *App) applyOptions(fs *pflag.FlagSet) error {
	if a.options == nil {
		return nil
	}

	if !a.noConfig {
		if err := loadConfig(a.name, fs); err != nil {
			return err
		}
		if err := viper.Unmarshal(a.options); err != nil {
			return fmt.Errorf("failed to unmarshal configuration: %w", err)
		}
		a.watchConfig()
	}

	if errs := a.options.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %v", errs)
	}

	return nil
}

// Command returns the root cobra command so callers can attach
// subcommands.
func (a *App) Command() *cobra.Command {
	return a.cmd
}

// AddCommand attaches subcommands to the root command.
func (a *App) AddCommand(cmds ...*cobra.Command) {
	a.cmd.AddCommand(cmds...)
}

// Run executes the command tree and exits non-zero on error.
func (a *App) Run() {
	if err := a.cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Flush()
		os.Exit(1)
	}
	log.Flush()
}
