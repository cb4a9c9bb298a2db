// Package commands provides the complete CLI command structure for the mockapid daemon.
//
// This package implements the root command and flag system for mockapid,
// the mock JSON API server used to develop storefront clients locally.
// It manages the CLI interface for server binding, product fixture
// loading, and operational parameters through a flag system and
// validation pipeline.
//
// COMMAND ARCHITECTURE:
// The daemon uses a simple root command structure with flag support:
//   - Root Command: Server execution with binding and fixture configuration
//   - Flag System: Network, fixture, and operational settings
//   - Validation Pipeline: Pre-execution configuration validation and setup
//   - Logo Display: Daemon startup presentation
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anycommerce/storefront/cmd/mockapid/config"
	"github.com/anycommerce/storefront/cmd/mockapid/daemon"
	"github.com/anycommerce/storefront/cmd/mockapid/utils"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/anycommerce/storefront/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists.
// Called during daemon shutdown to ensure proper cleanup.
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Log to stderr since we're cleaning up the log file
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the mockapid daemon
var RootCmd = &cobra.Command{
	Use:   "mockapid",
	Short: "Mock JSON API server for storefront client development",
	Long: `Mock API daemon (mockapid) serves the batched commerce JSON API that
storefront clients flush their dispatch queues to.

State lives in memory: carts and coupons reset on restart, and product
documents are loaded from fixture files at startup. Intended for local
development and integration testing, never production traffic.`,
	Version:      version.MockapidVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start with defaults (binds 0.0.0.0:8018, endpoint /jsonapi/)
  mockapid

  # Load product fixtures at startup
  mockapid --products=./fixtures/products

  # Bind a different address and endpoint
  mockapid --api=127.0.0.1:9000 --endpoint=/api/commerce/`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.MockapidVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Check which flags were explicitly set by user
		CheckExplicitFlags(cmd)

		// Setup log file redirection if --log-file was specified
		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			// Create parent directories if they don't exist
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			// Open/create log file with append mode
			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			// Redirect all logging to the file
			logging.SetOutput(logFileHandle)
		}

		// Configure logging level immediately after flags are parsed to prevent
		// INFO logs during config initialization when ERROR level is requested
		logging.SetLevel(config.Global.LogLevel)
		// Initialize configuration from environment variables and defaults
		config.InitializeConfig()
		// Re-apply logging level after config initialization to pick up
		// any environment variable overrides that may have changed the log level
		logging.SetLevel(config.Global.LogLevel)
		// Validate configuration and ensure log file cleanup on validation failure
		if err := config.ValidateConfig(); err != nil {
			// Close log file handle if validation fails to prevent resource leak
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ensure log file cleanup on exit
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	// Setup all flags
	SetupFlags(RootCmd)

	// Currently only has the root command
	// Future subcommands can be added here
}
