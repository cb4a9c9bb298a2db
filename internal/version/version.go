// Package version provides centralized version information for the
// storefront client kit binaries. storefrontctl and mockapid version
// independently so the dev mock server can evolve without forcing CLI
// releases, while staying consistent within each binary's components.
// All versions follow semantic versioning (semver) conventions.

package version

// StorefrontctlVersion holds the current storefrontctl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const StorefrontctlVersion = "0.1.0-dev"

// MockapidVersion holds the current mockapid dev server version.
// Format: major.minor.patch[-prerelease][+build]
const MockapidVersion = "0.1.0-dev"
