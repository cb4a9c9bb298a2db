// Package main provides the entry point for the storefront CLI tool (storefrontctl).
//
// This package implements the main executable for the storefront client
// kit CLI, which exercises the tiered dispatch queue and its supporting
// commerce services against a JSON API server. The CLI reads prepared
// request scripts, pushes them through the queue, flushes them to the
// server, and inspects products and checkout validation locally.
//
// CLI ARCHITECTURE:
// The main package orchestrates the complete CLI system including:
//   - Command Structure: Hierarchical resource-based commands (queue, sku, validate)
//   - Handler Integration: Command execution with queue and API client wiring
//   - Flag Management: Global and command-specific configuration options
//   - Configuration Binding: CLI state management and validation pipeline
//
// COMMAND CATEGORIES:
//   - Queue Commands: Dispatch queue loading, validation, and flushing
//   - SKU Commands: Product document loading, SKU assembly, and pricing
//   - Validate Commands: Checkout field validation rules
//   - Health Command: API server reachability probe
//
// INITIALIZATION FLOW:
// 1. Command structure setup with hierarchical organization
// 2. Flag configuration for global and command-specific options
// 3. Handler assignment linking commands to queue and API operations
// 4. Configuration validation and CLI state management
// 5. Command execution with proper error handling and exit codes
//
// The CLI follows kubectl-style patterns with consistent interfaces,
// comprehensive help text, and production-ready reliability.
package main

import (
	"os"

	"github.com/anycommerce/storefront/cmd/storefrontctl/commands"
	"github.com/anycommerce/storefront/cmd/storefrontctl/config"
	"github.com/anycommerce/storefront/cmd/storefrontctl/handlers"
	internalconfig "github.com/anycommerce/storefront/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	// Get root command from commands package
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()
	commands.SetupQueueCommands()
	commands.SetupSKUCommands()
	commands.SetupValidateCommands()

	// Setup global flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.Endpoint,
		&config.Global.LogLevel, &config.Global.Timeout, &config.Global.Verbose,
		&config.Global.Output, config.DefaultAPIAddr, internalconfig.DefaultEndpoint)

	// Setup queue command flags
	queueFlushCmd, queueCheckCmd := commands.GetQueueCommands()
	setupQueueFlags(queueFlushCmd, queueCheckCmd)

	// Setup sku command flags
	skuResolveCmd := commands.GetSKUCommands()
	setupSKUFlags(skuResolveCmd)

	// Setup validate command flags
	validateFieldCmd := commands.GetValidateCommands()
	setupValidateFlags(validateFieldCmd)

	// Setup command handlers
	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	queueFlushCmd, queueCheckCmd := commands.GetQueueCommands()
	queueFlushCmd.RunE = handlers.HandleQueueFlush
	queueCheckCmd.RunE = handlers.HandleQueueCheck

	skuResolveCmd := commands.GetSKUCommands()
	skuResolveCmd.RunE = handlers.HandleSKUResolve

	validateFieldCmd := commands.GetValidateCommands()
	validateFieldCmd.RunE = handlers.HandleValidateField

	commands.GetHealthCommand().RunE = handlers.HandleHealth
}

// setupQueueFlags configures flags for queue commands
func setupQueueFlags(flushCmd, checkCmd *cobra.Command) {
	for _, cmd := range []*cobra.Command{flushCmd, checkCmd} {
		cmd.Flags().StringVarP(&config.Queue.File, "file", "f", "",
			"Requests file in JSON Lines format (use - for stdin)")
		cmd.MarkFlagRequired("file")
	}
}

// setupSKUFlags configures flags for sku commands
func setupSKUFlags(resolveCmd *cobra.Command) {
	resolveCmd.Flags().StringVar(&config.SKU.ProductFile, "product", "",
		"Product document (JSON file)")
	resolveCmd.Flags().StringSliceVar(&config.SKU.Selections, "select", nil,
		"Variation selections (id=value format)")
	resolveCmd.MarkFlagRequired("product")
}

// setupValidateFlags configures flags for validate commands
func setupValidateFlags(fieldCmd *cobra.Command) {
	fieldCmd.Flags().StringVar(&config.Validate.Rule, "rule", "",
		"Validation rule: required, email, phone, zipcode, creditcard, minlength, maxlength, pattern")
	fieldCmd.Flags().StringVar(&config.Validate.Param, "param", "",
		"Rule parameter (length bound or pattern text)")
	fieldCmd.MarkFlagRequired("rule")
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
