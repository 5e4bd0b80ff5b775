// Package main is the entry point for the roundsheet CLI.
package main

import (
	"os"

	"github.com/jcleary/roundsheet/cmd/roundsheet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
