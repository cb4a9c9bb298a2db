// Package api provides the HTTP JSON API server for mockapid, the local
// development stand-in for the commerce platform. It accepts the batched
// request arrays that the dispatch queue's flush driver POSTs, executes
// each command against in-memory cart and catalog state, and answers
// with one response document per request in batch order.
//
// The server exists so storefront clients can be developed and tested
// without a live platform account: it honors the same wire shape
// (flat JSON objects carrying _cmd and optional _tag) and the same
// one-response-per-request contract, but holds everything in memory and
// makes no durability promises.
package api

import (
	"fmt"

	"github.com/anycommerce/storefront/internal/cart"
	"github.com/anycommerce/storefront/internal/catalog"
	"github.com/anycommerce/storefront/internal/config"
	"github.com/anycommerce/storefront/internal/validate"
)

// Config holds all configuration parameters required for running the
// mock JSON API server.
//
// The struct serves as a dependency injection container: the daemon
// constructs the cart manager and catalog processor, loads any product
// fixtures, and hands both here so the server stays decoupled from
// fixture loading and lifecycle concerns.
//
// TODO: Add support for TLS/HTTPS configuration (cert/key files)
type Config struct {
	BindAddr string // HTTP server bind address (e.g., "0.0.0.0")
	BindPort int    // HTTP server bind port
	Endpoint string // JSON API endpoint path batches are POSTed to

	Carts   *cart.Manager      // In-memory cart state shared across requests
	Catalog *catalog.Processor // Loaded product data for catalog commands
}

// DefaultConfig creates a new Config instance with sensible default
// values for local development, which is the only environment mockapid
// targets.
func DefaultConfig() *Config {
	return &Config{
		// Default to loopback for safer local development.
		BindAddr: "127.0.0.1",
		BindPort: config.DefaultAPIPort,
		Endpoint: config.DefaultEndpoint,
		Carts:    nil, // Must be set by caller
		Catalog:  nil, // Must be set by caller
	}
}

// Validate performs validation of all configuration parameters to
// ensure the API server can start successfully: network settings are
// checked for common deployment mistakes and both state dependencies
// must be wired.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if err := validate.ValidateRequiredString(c.Endpoint, "endpoint path"); err != nil {
		return err
	}
	if c.Endpoint[0] != '/' {
		return fmt.Errorf("endpoint path must start with /, got %q", c.Endpoint)
	}
	if c.Carts == nil {
		return fmt.Errorf("cart manager cannot be nil")
	}
	if c.Catalog == nil {
		return fmt.Errorf("catalog processor cannot be nil")
	}

	return nil
}
