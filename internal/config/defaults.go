// Package config provides common default configuration values shared
// across the storefront binaries (storefrontctl, mockapid) and the flush
// driver. This centralizes configuration management and ensures the CLI
// and the mock API agree on addresses and endpoints out of the box.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the mock API server
	// Using 0.0.0.0 allows binding to all available network interfaces
	DefaultBindAddr = "0.0.0.0"

	// DefaultAPIPort is the default port the mock API server listens on
	// and the CLI's flush driver connects to
	DefaultAPIPort = 8018

	// DefaultEndpoint is the JSON API endpoint path every batch is
	// POSTed to; the dispatch queue is bound to it at construction
	DefaultEndpoint = "/jsonapi/"

	// DefaultLogLevel is the default log level for all components
	// INFO provides good balance of visibility without verbose debug output
	DefaultLogLevel = "INFO"

	// DefaultFlushInterval is how often the flush driver checks the
	// queue for pending work
	// TODO: allow a per-tier interval so passive pings can flush slower
	DefaultFlushInterval = 250 * time.Millisecond

	// DefaultHTTPTimeout bounds one batch POST end to end
	DefaultHTTPTimeout = 10 * time.Second
)
