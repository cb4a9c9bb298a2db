// Package handlers provides command handler functions for storefrontctl.
//
// This package contains all the command execution logic for storefrontctl
// commands, organized by resource type for maintainability and clean
// separation of concerns. Each handler file corresponds to a specific
// resource type and contains all related command handlers and helper
// functions.
//
// The package is organized as follows:
// - queue.go: Dispatch queue operations (flush, check)
// - sku.go: Product SKU assembly and pricing (resolve)
// - validate.go: Checkout field validation (field)
// - health.go: API server reachability probe
//
// All handlers follow consistent patterns:
// - cobra.Command RunE function signature for CLI integration
// - Standardized error handling and logging using the logging package
// - Consistent output formatting through the display package
// - Clean separation between queue/API mechanics and presentation logic
package handlers
