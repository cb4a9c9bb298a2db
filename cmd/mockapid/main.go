// Package main implements the mock JSON API daemon (mockapid).
// mockapid is the local development stand-in for the commerce platform:
// it serves the batched JSON API that storefront clients flush their
// dispatch queues to, backed by in-memory cart and catalog state.
package main

import (
	"os"

	"github.com/anycommerce/storefront/cmd/mockapid/commands"
)

// Main entry point
func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
