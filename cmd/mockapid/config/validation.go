// Package config handles configuration validation for the mockapid daemon.
//
// This package provides validation logic for all daemon configuration
// parameters before startup: network address parsing, endpoint path
// checks, product fixture directory verification, and log level
// validation. The validation process transforms raw CLI values into
// normalized forms ready for service initialization.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/anycommerce/storefront/internal/logging"
	"github.com/anycommerce/storefront/internal/validate"
)

// InitializeConfig initializes configuration from environment variables and defaults.
// Sets up the Global config with environment variable overrides before
// validation runs, ensuring consistent configuration state.
func InitializeConfig() {
	// Initialize DEBUG environment variable override
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}
}

// ValidateConfig performs validation and normalization of all daemon
// configuration parameters before service startup.
//
// The API address is parsed into host and port form, the endpoint path
// is checked for shape, and the products directory must exist when set.
// Returns error for any validation failure with descriptive context.
func ValidateConfig() error {
	// Parse and validate the API bind address
	netAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}

	// Enforce explicit port assignment: clients configure a fixed address,
	// so an OS-assigned port would be undiscoverable
	if err := validate.ValidateField(netAddr.Port, "required,min=1,max=65535"); err != nil {
		logging.Error("API port cannot be 0 (auto-assigned) - clients need a fixed port")
		return fmt.Errorf("daemon requires specific port (not 0): %w", err)
	}

	Global.APIAddr = netAddr.Host
	Global.APIPort = netAddr.Port

	if Global.Endpoint == "" || !strings.HasPrefix(Global.Endpoint, "/") {
		logging.Error("Invalid endpoint path '%s' - must start with /", Global.Endpoint)
		return fmt.Errorf("endpoint path must be an absolute path like /jsonapi/, got %q", Global.Endpoint)
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	// Product fixtures are optional, but a named directory must exist
	if Global.ProductsDir != "" {
		info, err := os.Stat(Global.ProductsDir)
		if err != nil {
			logging.Error("Products directory '%s' not accessible: %v", Global.ProductsDir, err)
			return fmt.Errorf("products directory not accessible: %w", err)
		}
		if !info.IsDir() {
			logging.Error("Products path '%s' is not a directory", Global.ProductsDir)
			return fmt.Errorf("products path %q is not a directory", Global.ProductsDir)
		}
	}

	return nil
}
