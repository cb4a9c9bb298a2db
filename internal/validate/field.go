package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleType identifies one checkout form validation rule. The set matches
// what the storefront UI attaches to its input fields.
type RuleType string

const (
	RuleRequired   RuleType = "required"
	RuleEmail      RuleType = "email"
	RulePhone      RuleType = "phone"
	RuleZipCode    RuleType = "zipcode"
	RuleCreditCard RuleType = "creditcard"
	RuleMinLength  RuleType = "minlength"
	RuleMaxLength  RuleType = "maxlength"
	RulePattern    RuleType = "pattern"
)

// Rule describes a single validation constraint on a form field: the rule
// type, an optional parameter (length bound or pattern), and the message
// the UI should surface when the value fails.
type Rule struct {
	Type    RuleType `json:"rule_type"`
	Param   string   `json:"param,omitempty"`
	Message string   `json:"message"`
}

// FieldError reports one failed rule for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Field checks a single value against one rule. Returns whether the value
// passes; an unknown rule type is a programming error and returns an error
// instead of a verdict. Rules with an unparseable numeric param fail closed.
func Field(value string, rule Rule) (bool, error) {
	switch rule.Type {
	case RuleRequired:
		return strings.TrimSpace(value) != "", nil

	case RuleEmail:
		return ValidateField(value, "required,email") == nil, nil

	case RulePhone:
		// Accepts any formatting as long as at least 10 digits remain
		return len(digitsOf(value)) >= 10, nil

	case RuleZipCode:
		// US ZIP or ZIP+4
		n := len(digitsOf(value))
		return n == 5 || n == 9, nil

	case RuleCreditCard:
		// Luhn check via the validator library's built-in tag
		return ValidateField(digitsOf(value), "required,credit_card") == nil, nil

	case RuleMinLength:
		min, err := strconv.Atoi(rule.Param)
		if err != nil {
			return false, nil
		}
		return len(value) >= min, nil

	case RuleMaxLength:
		max, err := strconv.Atoi(rule.Param)
		if err != nil {
			return false, nil
		}
		return len(value) <= max, nil

	case RulePattern:
		// Substring containment, matching the storefront UI's loose
		// pattern semantics
		if rule.Param == "" {
			return false, nil
		}
		return strings.Contains(value, rule.Param), nil
	}

	return false, fmt.Errorf("unknown validation rule type: %q", rule.Type)
}

// Fields validates a set of field values against per-field rule lists and
// collects every failure. A nil return means the whole form passed.
func Fields(values map[string]string, rules map[string][]Rule) ([]FieldError, error) {
	var failures []FieldError
	for field, fieldRules := range rules {
		value := values[field]
		for _, rule := range fieldRules {
			ok, err := Field(value, rule)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			if !ok {
				failures = append(failures, FieldError{Field: field, Message: rule.Message})
			}
		}
	}
	return failures, nil
}

// digitsOf strips everything except ASCII digits, tolerating the dashes,
// spaces, and parentheses users type into phone/card/zip fields.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
