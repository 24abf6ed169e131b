// Package main is the entry point for the quotecalc CLI.
package main

import (
	"os"

	"quotecalc/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
