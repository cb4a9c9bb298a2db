// Package commands contains Cobra CLI command definitions for mockapid.
package commands

import (
	"github.com/anycommerce/storefront/cmd/mockapid/config"
	"github.com/spf13/cobra"
)

// SetupFlags configures all command line flags for the daemon
func SetupFlags(cmd *cobra.Command) {
	// API flags
	cmd.Flags().StringVar(&config.Global.APIAddr, "api", config.DefaultAPI,
		"Address and port for the HTTP JSON API server (e.g., "+config.DefaultAPI+")")
	cmd.Flags().StringVar(&config.Global.Endpoint, "endpoint", config.DefaultEndpoint,
		"JSON API endpoint path batches are POSTed to")

	// Fixture flags
	cmd.Flags().StringVar(&config.Global.ProductsDir, "products", "",
		"Directory of product fixture documents (*.json) loaded at startup")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Log file path (defaults to terminal output)")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.APIAddrField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
}
