// Package main is the entry point for the ctp CLI.
package main

import (
	"os"

	"github.com/olivercalder/character-text-pipeline/cmd/ctp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
