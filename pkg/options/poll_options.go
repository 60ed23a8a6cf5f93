package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*PollOptions)(nil)

// PollOptions contains the refresh intervals of the polling controllers.
// The defaults mirror the product behavior: the GPS view refreshes every
// 10 seconds and an open conversation every 3 seconds.
type PollOptions struct {
	// GPSInterval is the delay between tracked-object snapshot refreshes.
	GPSInterval time.Duration `json:"gps-interval" mapstructure:"gps-interval"`

	// MessageInterval is the delay between inbox refreshes.
	MessageInterval time.Duration `json:"message-interval" mapstructure:"message-interval"`
}

// NewPollOptions creates a PollOptions object with default parameters.
func NewPollOptions() *PollOptions {
	return &PollOptions{
		GPSInterval:     10 * time.Second,
		MessageInterval: 3 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *PollOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if o.GPSInterval < time.Second {
		errors = append(errors, fmt.Errorf("gps poll interval %s is below 1s", o.GPSInterval))
	}

	if o.MessageInterval < time.Second {
		errors = append(errors, fmt.Errorf("message poll interval %s is below 1s", o.MessageInterval))
	}

	return errors
}

// AddFlags adds flags related to polling to the specified FlagSet.
func (o *PollOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.GPSInterval, "poll.gps-interval", o.GPSInterval, "Refresh interval for GPS tracked objects.")
	fs.DurationVar(&o.MessageInterval, "poll.message-interval", o.MessageInterval, "Refresh interval for the messaging inbox.")
}
