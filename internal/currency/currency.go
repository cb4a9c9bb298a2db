// Package currency provides display formatting and parsing for monetary
// amounts shown in the storefront UI. Amounts are plain float64 values in
// major units; the JSON API carries prices the same way.
package currency

import (
	"fmt"
	"strconv"
	"strings"
)

// symbols maps the currencies the storefront renders with a leading symbol.
// Everything else falls back to "<amount> <code>".
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders an amount for display: known currencies get their symbol
// prefix, others a trailing code, always with two decimals.
func Format(amount float64, code string) string {
	if symbol, ok := symbols[strings.ToUpper(code)]; ok {
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
	return fmt.Sprintf("%.2f %s", amount, code)
}

// Parse reads a user-entered or displayed amount back into a float,
// tolerating currency symbols and thousands separators.
func Parse(value string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(value)

	amount, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse currency %q: %w", value, err)
	}
	return amount, nil
}
