// Package utils contains utility functions for the mockapid daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the mockapid ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▄█░█▀█░█▀▀░█░█░█▀█░█▀█░▀█▀░█▀▄░
 ░█░█░█░█░█░░░█▀▄░█▀█░█▀▀░░█░░█░█░
 ░▀░▀░▀▀▀░▀▀▀░▀░▀░▀░▀░▀░░░▀▀▀░▀▀░░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n mockapid v%s - Mock Commerce JSON API\n", version)
	fmt.Println(" In-memory stand-in for the storefront platform")
	fmt.Println()
}
