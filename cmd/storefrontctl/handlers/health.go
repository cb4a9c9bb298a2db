// Package handlers provides command handler functions for the
// storefrontctl health probe.
package handlers

import (
	"time"

	"github.com/anycommerce/storefront/cmd/storefrontctl/config"
	"github.com/anycommerce/storefront/cmd/storefrontctl/display"
	"github.com/anycommerce/storefront/cmd/storefrontctl/utils"
	"github.com/anycommerce/storefront/internal/flush"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/spf13/cobra"
)

// HandleHealth handles the health command: probe the API server's health
// endpoint and report reachability.
func HandleHealth(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Probing API server: %s", config.Global.APIAddr)

	client := flush.NewClient(config.Global.APIAddr, config.Global.Endpoint,
		time.Duration(config.Global.Timeout)*time.Second)

	start := time.Now()
	err := client.Health()
	elapsed := time.Since(start)

	display.DisplayHealth(config.Global.APIAddr, elapsed, err)
	if err != nil {
		return err
	}

	logging.Success("API server is healthy (%v)", elapsed)
	return nil
}
