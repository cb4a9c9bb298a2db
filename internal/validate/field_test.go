package validate

import (
	"testing"
)

// TestFieldRules tests each rule type against passing and failing values
func TestFieldRules(t *testing.T) {
	tests := []struct {
		name  string
		value string
		rule  Rule
		want  bool
	}{
		// required
		{name: "required with value", value: "hello", rule: Rule{Type: RuleRequired}, want: true},
		{name: "required empty", value: "", rule: Rule{Type: RuleRequired}, want: false},
		{name: "required whitespace only", value: "   ", rule: Rule{Type: RuleRequired}, want: false},

		// email
		{name: "valid email", value: "test@example.com", rule: Rule{Type: RuleEmail}, want: true},
		{name: "invalid email", value: "invalid-email", rule: Rule{Type: RuleEmail}, want: false},
		{name: "empty email", value: "", rule: Rule{Type: RuleEmail}, want: false},

		// phone
		{name: "ten digit phone", value: "5551234567", rule: Rule{Type: RulePhone}, want: true},
		{name: "formatted phone", value: "(555) 123-4567", rule: Rule{Type: RulePhone}, want: true},
		{name: "short phone", value: "555-1234", rule: Rule{Type: RulePhone}, want: false},

		// zipcode
		{name: "five digit zip", value: "90210", rule: Rule{Type: RuleZipCode}, want: true},
		{name: "zip plus four", value: "90210-1234", rule: Rule{Type: RuleZipCode}, want: true},
		{name: "short zip", value: "902", rule: Rule{Type: RuleZipCode}, want: false},
		{name: "long zip", value: "90210123456", rule: Rule{Type: RuleZipCode}, want: false},

		// creditcard (Luhn)
		{name: "valid card", value: "4532015112830366", rule: Rule{Type: RuleCreditCard}, want: true},
		{name: "valid card with dashes", value: "4532-0151-1283-0366", rule: Rule{Type: RuleCreditCard}, want: true},
		{name: "luhn failure", value: "4532015112830367", rule: Rule{Type: RuleCreditCard}, want: false},
		{name: "too short card", value: "4111", rule: Rule{Type: RuleCreditCard}, want: false},

		// minlength / maxlength
		{name: "minlength pass", value: "abcdef", rule: Rule{Type: RuleMinLength, Param: "4"}, want: true},
		{name: "minlength fail", value: "abc", rule: Rule{Type: RuleMinLength, Param: "4"}, want: false},
		{name: "minlength bad param fails closed", value: "abc", rule: Rule{Type: RuleMinLength, Param: "x"}, want: false},
		{name: "maxlength pass", value: "abc", rule: Rule{Type: RuleMaxLength, Param: "4"}, want: true},
		{name: "maxlength fail", value: "abcdef", rule: Rule{Type: RuleMaxLength, Param: "4"}, want: false},

		// pattern (substring containment)
		{name: "pattern contains", value: "order-12345", rule: Rule{Type: RulePattern, Param: "order-"}, want: true},
		{name: "pattern missing", value: "12345", rule: Rule{Type: RulePattern, Param: "order-"}, want: false},
		{name: "pattern empty param", value: "anything", rule: Rule{Type: RulePattern}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Field(tt.value, tt.rule)
			if err != nil {
				t.Fatalf("Field(%q, %v) failed: %v", tt.value, tt.rule.Type, err)
			}
			if got != tt.want {
				t.Errorf("Field(%q, %v) = %v, want %v", tt.value, tt.rule.Type, got, tt.want)
			}
		})
	}
}

// TestFieldUnknownRule tests that unknown rule types are rejected
func TestFieldUnknownRule(t *testing.T) {
	if _, err := Field("value", Rule{Type: "telepathy"}); err == nil {
		t.Error("Field with unknown rule type succeeded, want error")
	}
}

// TestFields tests whole-form validation with collected failures
func TestFields(t *testing.T) {
	rules := map[string][]Rule{
		"email": {
			{Type: RuleRequired, Message: "email is required"},
			{Type: RuleEmail, Message: "email is invalid"},
		},
		"zip": {
			{Type: RuleZipCode, Message: "zip is invalid"},
		},
	}

	t.Run("all passing", func(t *testing.T) {
		failures, err := Fields(map[string]string{
			"email": "shopper@example.com",
			"zip":   "90210",
		}, rules)
		if err != nil {
			t.Fatalf("Fields failed: %v", err)
		}
		if len(failures) != 0 {
			t.Errorf("got %d failures, want 0: %v", len(failures), failures)
		}
	})

	t.Run("collects every failure", func(t *testing.T) {
		failures, err := Fields(map[string]string{
			"email": "not-an-email",
			"zip":   "abc",
		}, rules)
		if err != nil {
			t.Fatalf("Fields failed: %v", err)
		}
		// invalid email: 1 failure; invalid zip: 1 failure
		if len(failures) != 2 {
			t.Errorf("got %d failures, want 2: %v", len(failures), failures)
		}
	})
}

// TestParseBindAddress tests host:port parsing and validation
func TestParseBindAddress(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "valid loopback", input: "127.0.0.1:8018", expectErr: false},
		{name: "valid all interfaces", input: "0.0.0.0:8018", expectErr: false},
		{name: "missing port", input: "127.0.0.1", expectErr: true},
		{name: "bad port", input: "127.0.0.1:notaport", expectErr: true},
		{name: "port out of range", input: "127.0.0.1:70000", expectErr: true},
		{name: "not an ip", input: "storefront.local:8018", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseBindAddress(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ParseBindAddress(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBindAddress(%q) failed: %v", tt.input, err)
			}
			if addr.String() != tt.input {
				t.Errorf("String() = %q, want %q", addr.String(), tt.input)
			}
		})
	}
}
