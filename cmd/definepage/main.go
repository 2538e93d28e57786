// Package main provides the definepage CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/definepage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
