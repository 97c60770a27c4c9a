// Package main is the entry point for the pagepress CLI.
package main

import (
	"os"

	"github.com/jmylchreest/pagepress/cmd/pagepress/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
