// Package handlers provides command handler functions for storefrontctl
// sku operations.
//
// This file contains the product SKU command handlers: loading a product
// document, assembling the concrete SKU from variation selections, and
// reporting the resulting price and stock record.
package handlers

import (
	"fmt"
	"os"
	"strings"

	"github.com/anycommerce/storefront/cmd/storefrontctl/config"
	"github.com/anycommerce/storefront/cmd/storefrontctl/display"
	"github.com/anycommerce/storefront/cmd/storefrontctl/utils"
	"github.com/anycommerce/storefront/internal/catalog"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/spf13/cobra"
)

// HandleSKUResolve handles the sku resolve subcommand: load the product,
// assemble the SKU for the given selections, and display SKU, price, and
// inventory when the catalog carries a stock record for it.
func HandleSKUResolve(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if config.SKU.ProductFile == "" {
		return fmt.Errorf("product document is required (use --product)")
	}

	data, err := os.ReadFile(config.SKU.ProductFile)
	if err != nil {
		return fmt.Errorf("failed to read product document: %w", err)
	}

	processor := catalog.NewProcessor()
	pid, err := processor.Load(data)
	if err != nil {
		return err
	}
	logging.Info("Loaded product %s from %s", pid, config.SKU.ProductFile)

	selections, err := parseSelections(config.SKU.Selections)
	if err != nil {
		return err
	}

	sku, err := processor.SKU(pid, selections)
	if err != nil {
		return err
	}
	price, err := processor.Price(pid, selections)
	if err != nil {
		return err
	}

	result := display.SKUResolution{
		PID:        pid,
		SKU:        sku,
		Price:      price,
		Selections: selections,
	}

	// Inventory is optional: fixture products often carry no stock records
	if inv, err := processor.Inventory(sku); err == nil {
		result.Inventory = &inv
	}

	display.DisplaySKUResolution(result)
	logging.Success("Successfully resolved SKU %s", sku)
	return nil
}

// parseSelections converts id=value flags into a selection map.
func parseSelections(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	selections := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, value, found := strings.Cut(pair, "=")
		if !found || id == "" || value == "" {
			return nil, fmt.Errorf("invalid selection %q - expected id=value", pair)
		}
		selections[id] = value
	}
	return selections, nil
}
