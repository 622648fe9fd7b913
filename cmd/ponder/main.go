// Package main provides the ponder CLI tool for searching chess moves and
// analyzing finished games.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
