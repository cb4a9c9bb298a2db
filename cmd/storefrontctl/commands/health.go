package commands

import (
	"github.com/spf13/cobra"
)

// Health probe command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the JSON API server is reachable and answering",
	Example: `  # Probe the default local server
  storefrontctl health

  # Probe a remote server
  storefrontctl --api=192.168.1.100:8018 health`,
}

// GetHealthCommand returns the health command reference for handler setup
func GetHealthCommand() *cobra.Command {
	return healthCmd
}
