package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// IOptions is the contract every option group implements so that app-level
// option structs can aggregate them uniformly.
type IOptions interface {
	// Validate checks the option values entered by the user at startup.
	Validate() []error

	// AddFlags binds the option fields to the given FlagSet.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// ValidateAddress verifies that addr is a host:port listen address.
func ValidateAddress(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}

	return nil
}
