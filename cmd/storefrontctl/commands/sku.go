package commands

import (
	"github.com/spf13/cobra"
)

// Parent command for product SKU operations
var skuCmd = &cobra.Command{
	Use:   "sku",
	Short: "Product SKU assembly and pricing",
}

// sku resolve subcommand
var skuResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Assemble the concrete SKU and price for a variation selection",
	Long: `Load a product document and resolve the SKU, unit price, and stock
record for the given variation selections. Selections are passed as
id=value pairs matching the product's declared variations.`,
	Example: `  # Resolve with one selection
  storefrontctl sku resolve --product widget.json --select 02=01

  # Products without variations resolve to their bare PID
  storefrontctl sku resolve --product plain.json`,
}

// SetupSKUCommands wires sku subcommands to their parent
func SetupSKUCommands() {
	skuCmd.AddCommand(skuResolveCmd)
}

// GetSKUCommands returns sku command references for flag and handler setup
func GetSKUCommands() (resolveCmd *cobra.Command) {
	return skuResolveCmd
}
