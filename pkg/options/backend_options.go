package options

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*BackendOptions)(nil)

// BackendOptions contains configuration for reaching the LocaTrack REST backend.
type BackendOptions struct {
	// URL is the backend base URL; the client appends /api/... paths to it.
	URL string `json:"url" mapstructure:"url"`

	// Timeout bounds every request issued to the backend.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// ConfigDir is where client state lives, most notably the persisted
	// bearer token written on login and removed on logout.
	ConfigDir string `json:"config-dir" mapstructure:"config-dir"`
}

// NewBackendOptions creates a BackendOptions object with default parameters.
func NewBackendOptions() *BackendOptions {
	configDir := os.Getenv("LOCATRACK_CONFIG")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".locatrack")
	}

	return &BackendOptions{
		URL:       "https://app.locatrack.io",
		Timeout:   30 * time.Second,
		ConfigDir: configDir,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *BackendOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	u, err := url.Parse(o.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Errorf("invalid backend url %q", o.URL))
	}

	if o.Timeout <= 0 {
		errors = append(errors, fmt.Errorf("backend timeout must be positive, got %s", o.Timeout))
	}

	return errors
}

// AddFlags adds flags related to the backend connection to the specified FlagSet.
func (o *BackendOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.URL, "backend.url", o.URL, "Base URL of the LocaTrack backend.")
	fs.DurationVar(&o.Timeout, "backend.timeout", o.Timeout, "Timeout for backend requests.")
	fs.StringVar(&o.ConfigDir, "backend.config-dir", o.ConfigDir, "Directory holding client state such as the saved session token.")
}

// TokenPath returns the location of the persisted bearer token.
func (o *BackendOptions) TokenPath() string {
	return filepath.Join(o.ConfigDir, "token")
}
