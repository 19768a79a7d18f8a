// Package main provides the leapverb CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapverb/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
