// Package main is the entry point for the smartctl CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/smartdetect/cmd/smartctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
