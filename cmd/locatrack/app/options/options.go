package options

import (
	"github.com/spf13/pflag"

	"locatrack.io/locatrack/pkg/log"
	"locatrack.io/locatrack/pkg/options"
)

type CliOptions struct {
	BackendOptions *options.BackendOptions `json:"backend" mapstructure:"backend"`
	PollOptions    *options.PollOptions    `json:"poll" mapstructure:"poll"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ options.IOptions = (*CliOptions)(nil)

func NewCliOptions() *CliOptions {
	logOpts := log.NewOptions()
	// Tables on stdout; only warnings and errors interrupt them.
	logOpts.Level = "warn"

	return &CliOptions{
		BackendOptions: options.NewBackendOptions(),
		PollOptions:    options.NewPollOptions(),
		Log:            logOpts,
	}
}

func (o *CliOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	o.BackendOptions.AddFlags(fs)
	o.PollOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

func (o *CliOptions) Validate() []error {
	errs := []error{}
	errs = append(errs, o.BackendOptions.Validate()...)
	errs = append(errs, o.PollOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}
