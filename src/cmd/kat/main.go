// Package main provides the entry point for the kat CLI tool.
package main

import (
	"os"

	"github.com/howmanysmall/kat/src/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
