// Package main provides the littlelemon CLI.
package main

import "github.com/ksindesign/little-lemon-rn/internal/cli"

func main() {
	cli.Execute()
}
