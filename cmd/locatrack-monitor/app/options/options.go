package options

import (
	"github.com/spf13/pflag"

	"locatrack.io/locatrack/internal/monitor"
	"locatrack.io/locatrack/pkg/log"
	"locatrack.io/locatrack/pkg/options"
)

type MonitorOptions struct {
	BackendOptions *options.BackendOptions `json:"backend" mapstructure:"backend"`
	HttpOptions    *options.HttpOptions    `json:"http" mapstructure:"http"`
	PollOptions    *options.PollOptions    `json:"poll" mapstructure:"poll"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ options.IOptions = (*MonitorOptions)(nil)

func NewMonitorOptions() *MonitorOptions {
	return &MonitorOptions{
		BackendOptions: options.NewBackendOptions(),
		HttpOptions:    options.NewHttpOptions(),
		PollOptions:    options.NewPollOptions(),
		Log:            log.NewOptions(),
	}
}

func (o *MonitorOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	o.BackendOptions.AddFlags(fs)
	o.HttpOptions.AddFlags(fs)
	o.PollOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

func (o *MonitorOptions) Validate() []error {
	errs := []error{}
	errs = append(errs, o.BackendOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.PollOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

func (o *MonitorOptions) Config() (*monitor.Config, error) {
	return &monitor.Config{
		BackendOptions: o.BackendOptions,
		HttpOptions:    o.HttpOptions,
		PollOptions:    o.PollOptions,
	}, nil
}
