//go:build mage

package main

import "github.com/magefile/mage/sh"

// Generate runs go generate, which rebuilds the mockgen mocks.
func Generate() error {
	return sh.RunV(binGo, "generate", "./...")
}
