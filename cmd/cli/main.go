// Package main is the entry point for the dimscale CLI.
package main

import (
	"os"

	"dimscale/cmd/cli/cmd"
	"dimscale/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
