// Package validate provides configuration validation utilities shared by
// the storefrontctl CLI and the mockapid daemon.
//
// This file implements common validation patterns used across the config
// packages to ensure consistency and reduce duplication. All functions
// leverage the go-playground/validator library for standardized validation
// behavior.
//
// VALIDATION UTILITIES:
//   - Port validation: Standard port range checking (1-65535)
//   - String validation: Required field and non-empty string checking
//   - Timeout validation: Positive duration validation for timeouts
package validate

import (
	"fmt"
	"time"
)

// ValidatePortRange validates that a port number is within the valid range
// (1-65535). Uses the validator library for consistent error handling and
// messaging. Rejects port 0 (OS-assigned) since the CLI needs a predictable
// address to point the flush driver at.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
// Uses the validator library for consistent error handling across config
// validation. Catches missing endpoints, cart IDs, and product files before
// they turn into confusing runtime failures.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
// Used for the flush interval and HTTP client timeout to ensure proper
// timing behavior: a zero interval would spin the flush loop and a zero
// timeout would hang requests forever.
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
