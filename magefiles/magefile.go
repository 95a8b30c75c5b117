//go:build mage

// Package main provides build targets for the littlelemon project using Mage.
//
// Usage:
//
//	mage build          Compile littlelemon binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests without the race detector, short mode
//	mage test:race      Run all tests with the race detector
//	mage lint           Run golangci-lint
//	mage generate       Regenerate mocks (go generate)
//	mage clean          Remove build artifacts
//	mage install        Install littlelemon to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "littlelemon"
	binaryDir  = "bin"
	cmdDir     = "./cmd/littlelemon"
	versionVar = "github.com/ksindesign/little-lemon-rn/internal/cli.Version"
)

// Build compiles the littlelemon binary to bin/. LITTLELEMON_VERSION, when
// set, is stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("LITTLELEMON_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
