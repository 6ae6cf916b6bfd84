// Package main is the entry point for the cx-cost CLI.
package main

import (
	"os"

	"cx-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
