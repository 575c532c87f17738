// Package main is the entry point for the stalesweep binary.
package main

import (
	"os"

	"github.com/opsdesk/stalesweep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
