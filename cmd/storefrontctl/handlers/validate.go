// Package handlers provides command handler functions for storefrontctl
// validate operations.
//
// This file contains the checkout field validation handler: applying one
// named rule to a value and reporting pass or fail.
package handlers

import (
	"fmt"

	"github.com/anycommerce/storefront/cmd/storefrontctl/config"
	"github.com/anycommerce/storefront/cmd/storefrontctl/display"
	"github.com/anycommerce/storefront/cmd/storefrontctl/utils"
	"github.com/anycommerce/storefront/internal/validate"
	"github.com/spf13/cobra"
)

// HandleValidateField handles the validate field subcommand.
func HandleValidateField(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if config.Validate.Rule == "" {
		return fmt.Errorf("validation rule is required (use --rule)")
	}

	value := args[0]
	rule := validate.Rule{
		Type:  validate.RuleType(config.Validate.Rule),
		Param: config.Validate.Param,
	}

	ok, err := validate.Field(value, rule)
	if err != nil {
		return err
	}

	display.DisplayValidation(value, config.Validate.Rule, ok)
	if !ok {
		// Non-zero exit so scripts can branch on validation outcome
		return fmt.Errorf("value failed %s validation", config.Validate.Rule)
	}
	return nil
}
