// Package daemon provides the mockapid orchestration and lifecycle management.
//
// This package implements the startup, fixture loading, and graceful
// shutdown logic for the mock JSON API server. The daemon owns the
// in-memory cart and catalog state, loads product fixture documents at
// startup, binds the HTTP server, and tears everything down cleanly on
// shutdown signals.
//
// EXECUTION FLOW:
// 1. Construct the cart manager and catalog processor
// 2. Load product fixtures from the configured directory (*.json)
// 3. Start the HTTP API server with a test-bind to surface port conflicts
// 4. Wait for SIGINT/SIGTERM
// 5. Graceful HTTP shutdown with a bounded timeout
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/anycommerce/storefront/cmd/mockapid/config"
	"github.com/anycommerce/storefront/internal/api"
	"github.com/anycommerce/storefront/internal/cart"
	"github.com/anycommerce/storefront/internal/catalog"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/anycommerce/storefront/internal/version"
)

// shutdownTimeout bounds how long in-flight requests may run during shutdown
const shutdownTimeout = 10 * time.Second

// buildAPIConfig converts daemon config to API server config
func buildAPIConfig(carts *cart.Manager, processor *catalog.Processor) *api.Config {
	apiConfig := api.DefaultConfig()

	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.Endpoint = config.Global.Endpoint
	apiConfig.Carts = carts
	apiConfig.Catalog = processor

	return apiConfig
}

// loadProducts loads every *.json document in the fixtures directory into
// the catalog. A fixture that fails to parse aborts startup: serving a
// partially loaded catalog makes client bugs look like server bugs.
func loadProducts(processor *catalog.Processor, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("failed to scan products directory: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("failed to read product fixture %s: %w", path, err)
		}

		pid, err := processor.Load(data)
		if err != nil {
			return 0, fmt.Errorf("failed to load product fixture %s: %w", path, err)
		}
		logging.Debug("Loaded product %s from %s", pid, path)
	}

	return len(paths), nil
}

// Run orchestrates the complete mockapid lifecycle from initialization to
// graceful shutdown.
func Run() error {
	logging.Info("Starting mockapid v%s", version.MockapidVersion)

	// In-memory state shared by every request handler
	carts := cart.NewManager()
	processor := catalog.NewProcessor()

	// Load product fixtures if configured
	if config.Global.ProductsDir != "" {
		count, err := loadProducts(processor, config.Global.ProductsDir)
		if err != nil {
			return err
		}
		logging.Info("Loaded %d product fixture(s) from %s", count, config.Global.ProductsDir)
	} else {
		logging.Warn("No products directory configured; catalog commands will answer not-found")
	}

	// Build and validate API server configuration
	apiConfig := buildAPIConfig(carts, processor)
	if err := apiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid API configuration: %w", err)
	}

	server := api.NewServer(apiConfig)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	logging.Success("mockapid started successfully")
	logging.Info("Serving %s on %s:%d ... Press Ctrl+C to shutdown",
		config.Global.Endpoint, config.Global.APIAddr, config.Global.APIPort)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)

	// Graceful shutdown
	logging.Info("Initiating graceful shutdown...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
		return err
	}

	logging.Success("mockapid shutdown completed")
	return nil
}
