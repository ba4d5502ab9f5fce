// Package main is the entry point for the sistemaartn CLI.
package main

import (
	"os"

	"github.com/hbitsol/sistemaartn/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
