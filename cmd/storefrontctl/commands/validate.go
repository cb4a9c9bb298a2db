package commands

import (
	"github.com/spf13/cobra"
)

// Parent command for checkout field validation
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checkout field validation",
}

// validate field subcommand
var validateFieldCmd = &cobra.Command{
	Use:   "field [value]",
	Short: "Apply a validation rule to a field value",
	Long: `Apply one checkout validation rule to a value and report the result.

Supported rules: required, email, phone, zipcode, creditcard,
minlength, maxlength, pattern. Rules taking a parameter (length bounds,
pattern text) receive it via --param.`,
	Args: cobra.ExactArgs(1),
	Example: `  # Validate an email address
  storefrontctl validate field --rule email shopper@example.com

  # Validate a minimum length
  storefrontctl validate field --rule minlength --param 8 hunter2`,
}

// SetupValidateCommands wires validate subcommands to their parent
func SetupValidateCommands() {
	validateCmd.AddCommand(validateFieldCmd)
}

// GetValidateCommands returns validate command references for flag and handler setup
func GetValidateCommands() (fieldCmd *cobra.Command) {
	return validateFieldCmd
}
