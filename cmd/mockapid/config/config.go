// Package config provides configuration management for the mockapid daemon.
//
// This package implements the configuration system for the mock JSON API
// server: network binding, the endpoint path, product fixture loading,
// and logging parameters. Configuration state is centralized here with
// explicit user override tracking so validation can distinguish between
// user intent and defaults.
package config

import (
	configDefaults "github.com/anycommerce/storefront/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	APIAddrField ConfigField = iota
	LogFileField
)

const (
	DefaultAPI      = configDefaults.DefaultBindAddr + ":8018" // Default API address
	DefaultEndpoint = configDefaults.DefaultEndpoint           // Default JSON API endpoint path
	DefaultLogLevel = configDefaults.DefaultLogLevel           // Default log level
)

// Config holds all daemon configuration values
type Config struct {
	APIAddr     string // HTTP API server address
	APIPort     int    // HTTP API server port (derived from APIAddr)
	Endpoint    string // JSON API endpoint path batches are POSTed to
	ProductsDir string // Directory of product fixture documents (*.json)
	LogLevel    string // Log level: DEBUG, INFO, WARN, ERROR
	LogFile     string // Log file path (empty logs to stderr/stdout)

	// Flags to track if values were explicitly set by user
	apiAddrExplicitlySet bool
	logFileExplicitlySet bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case APIAddrField:
		c.apiAddrExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case APIAddrField:
		return c.apiAddrExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	}
	return false
}
