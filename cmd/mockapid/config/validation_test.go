// Package config provides configuration validation tests for the mockapid daemon.
//
// This test suite validates the daemon's startup configuration checks:
// API address parsing and normalization, port requirements, endpoint
// path shape, log level validation, and product fixture directory
// verification.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetGlobal restores a known-good configuration between cases
func resetGlobal() {
	Global = Config{
		APIAddr:  DefaultAPI,
		Endpoint: DefaultEndpoint,
		LogLevel: DefaultLogLevel,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func()
		expectError   bool
		errorContains string
	}{
		{
			name:        "defaults_ok",
			mutate:      func() {},
			expectError: false,
		},
		{
			name:        "explicit_loopback_ok",
			mutate:      func() { Global.APIAddr = "127.0.0.1:9000" },
			expectError: false,
		},
		{
			name:          "malformed_address_error",
			mutate:        func() { Global.APIAddr = "not-an-address" },
			expectError:   true,
			errorContains: "invalid API address",
		},
		{
			name:          "port_zero_error",
			mutate:        func() { Global.APIAddr = "127.0.0.1:0" },
			expectError:   true,
			errorContains: "specific port",
		},
		{
			name:          "relative_endpoint_error",
			mutate:        func() { Global.Endpoint = "jsonapi" },
			expectError:   true,
			errorContains: "absolute path",
		},
		{
			name:          "empty_endpoint_error",
			mutate:        func() { Global.Endpoint = "" },
			expectError:   true,
			errorContains: "absolute path",
		},
		{
			name:          "bad_log_level_error",
			mutate:        func() { Global.LogLevel = "LOUD" },
			expectError:   true,
			errorContains: "log level",
		},
		{
			name:          "missing_products_dir_error",
			mutate:        func() { Global.ProductsDir = "/no/such/fixture/dir" },
			expectError:   true,
			errorContains: "not accessible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobal()
			tt.mutate()

			err := ValidateConfig()
			if tt.expectError {
				if err == nil {
					t.Fatal("ValidateConfig() succeeded, want error")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("ValidateConfig() error = %q, want mention of %q", err, tt.errorContains)
				}
			} else if err != nil {
				t.Errorf("ValidateConfig() failed: %v", err)
			}
		})
	}
}

// TestValidateConfigNormalizesAddress tests host/port splitting
func TestValidateConfigNormalizesAddress(t *testing.T) {
	resetGlobal()
	Global.APIAddr = "127.0.0.1:9000"

	if err := ValidateConfig(); err != nil {
		t.Fatalf("ValidateConfig() failed: %v", err)
	}

	if Global.APIAddr != "127.0.0.1" {
		t.Errorf("APIAddr = %q, want host-only 127.0.0.1", Global.APIAddr)
	}
	if Global.APIPort != 9000 {
		t.Errorf("APIPort = %d, want 9000", Global.APIPort)
	}
}

// TestValidateConfigProductsFile tests that a file path is rejected where
// a directory is required
func TestValidateConfigProductsFile(t *testing.T) {
	resetGlobal()

	file := filepath.Join(t.TempDir(), "product.json")
	if err := os.WriteFile(file, []byte(`{"pid": "TEST"}`), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	Global.ProductsDir = file

	err := ValidateConfig()
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("ValidateConfig() = %v, want not-a-directory error", err)
	}
}
