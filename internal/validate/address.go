// Package validate provides input validation utilities for the storefront
// client kit, covering network addresses for the mock API daemon and
// checkout form fields for the field validator.
//
// Implements validation rules using the go-playground/validator library so
// that config validation and field validation share one consistent engine.
//
// VALIDATION COVERAGE:
//   - Network Addresses: IP and port validation for the mock API bind address
//   - Configuration: Parameter validation for binary settings
//   - Form Fields: Rule-driven checkout field validation (email, card, zip, ...)
//
// Used throughout CLI tools, configuration processing, and the mock API
// daemon to ensure consistent input validation across all entry points.
package validate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	// Built-in validators (ip, email, credit_card, min, max) cover every
	// rule we need; no custom registration required.
}

// NetworkAddress represents a validated network address with host and port
// components. Uses struct tags for automatic validation via the
// go-playground/validator library.
type NetworkAddress struct {
	Host string `validate:"required,ip"`     // Built-in IP validator
	Port int    `validate:"min=0,max=65535"` // Port 0 parses; daemons reject it separately
}

// String returns the network address in standard "host:port" format suitable
// for network connections, configuration display, and logging.
func (na NetworkAddress) String() string {
	return fmt.Sprintf("%s:%d", na.Host, na.Port)
}

// ParseBindAddress parses and validates a "host:port" address string.
// Provides format checking, IP address validation, and port range
// verification for addresses arriving from configuration files, CLI
// arguments, and flags.
//
// Returns a validated NetworkAddress structure or detailed error
// information for debugging configuration issues.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	// Validate using struct tags
	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates individual values against specified validation
// rules using the go-playground/validator library. Provides flexible
// validation for single fields without requiring struct definitions.
//
// Supports all built-in validation tags including email addresses, credit
// card numbers, numeric ranges, and required field validation.
//
// Example: ValidateField("ops@example.com", "required,email")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}
