// Package config provides configuration management for the storefrontctl CLI.
package config

import "github.com/anycommerce/storefront/internal/version"

const (
	DefaultAPIAddr = "127.0.0.1:8018" // Default JSON API server address (routable)
)

// Version returns the current storefrontctl CLI version from the centralized version package
var Version = version.StorefrontctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of JSON API server to connect to
	Endpoint string // JSON API endpoint path batches are POSTed to
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// Queue holds the queue command configuration
var Queue struct {
	File string // Requests file (JSON Lines); "-" reads stdin
}

// SKU holds the sku command configuration
var SKU struct {
	ProductFile string   // Product document to load
	Selections  []string // Variation selections (id=value format)
}

// Validate holds the validate command configuration
var Validate struct {
	Rule  string // Validation rule to apply
	Param string // Rule parameter (length bound, pattern)
}
