package commands

import (
	"github.com/spf13/cobra"
)

// Parent command for dispatch queue operations
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Dispatch queue operations",
	Long: `Push batched commerce requests through the tiered dispatch queue.

Requests are read as JSON Lines, one envelope per line:

  {"tier": "mutable", "request": {"_cmd": "appProductGet", "pid": "TEST"}}

Valid tiers are mutable, immutable, and passive. The flush subcommand
delivers queued requests to the API server tier by tier; check only
validates and reports what would be sent.`,
}

// queue flush subcommand
var queueFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Push requests through the queue and deliver them to the API",
	Example: `  # Flush requests from a file
  storefrontctl queue flush --file requests.jsonl

  # Flush requests from stdin
  cat requests.jsonl | storefrontctl queue flush --file -`,
}

// queue check subcommand
var queueCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate requests and report queue contents without sending",
	Example: `  # Report per-tier queue depth for a requests file
  storefrontctl queue check --file requests.jsonl`,
}

// SetupQueueCommands wires queue subcommands to their parent
func SetupQueueCommands() {
	queueCmd.AddCommand(queueFlushCmd)
	queueCmd.AddCommand(queueCheckCmd)
}

// GetQueueCommands returns queue command references for flag and handler setup
func GetQueueCommands() (flushCmd, checkCmd *cobra.Command) {
	return queueFlushCmd, queueCheckCmd
}
