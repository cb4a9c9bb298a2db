// Package commands provides the complete command tree implementation for storefrontctl.
//
// This package defines the hierarchical command structure for the storefront
// CLI tool, implementing a resource-based command architecture similar to
// kubectl. Commands are organized into logical groups that match the
// storefront client kit's capabilities.
//
// COMMAND STRUCTURE:
//   - queue: Dispatch queue operations (flush, check)
//   - sku: Product SKU assembly and pricing (resolve)
//   - validate: Checkout field validation (field)
//   - health: API server reachability probe
//
// All commands follow consistent patterns with standardized flag handling,
// error messages, and output formatting.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "storefrontctl",
	Short: "CLI tool for the storefront client kit and its dispatch queue",
	Long: `Storefront CLI (storefrontctl) is a command-line tool for exercising
the storefront client kit against a JSON API server.

It reads batched commerce requests, pushes them through the tiered
dispatch queue, flushes them to the API, and inspects products and
checkout field validation locally.`,
	SilenceUsage: true,
	Example: `  # Check the API server is reachable
  storefrontctl health

  # Flush a file of requests through the dispatch queue
  storefrontctl queue flush --file requests.jsonl

  # Validate requests without sending anything
  storefrontctl queue check --file requests.jsonl

  # Resolve a SKU and price from a product document
  storefrontctl sku resolve --product widget.json --select 02=01

  # Validate a checkout field value
  storefrontctl validate field --rule email shopper@example.com

  # Connect to a remote API server
  storefrontctl --api=192.168.1.100:8018 health

  # Output in JSON format
  storefrontctl -o json queue check --file requests.jsonl`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	// Add all top-level commands to root
	RootCmd.AddCommand(healthCmd)
	RootCmd.AddCommand(queueCmd)
	RootCmd.AddCommand(skuCmd)
	RootCmd.AddCommand(validateCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, endpointPtr *string,
	logLevelPtr *string, timeoutPtr *int, verbosePtr *bool, outputPtr *string,
	defaultAPIAddr, defaultEndpoint string) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"JSON API server address")
	rootCmd.PersistentFlags().StringVar(endpointPtr, "endpoint", defaultEndpoint,
		"JSON API endpoint path batches are POSTed to")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 8,
		"Connection timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
