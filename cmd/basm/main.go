// Package main is the entry point for the basm CLI.
package main

import (
	"os"

	"github.com/thoreinstein/basm/cmd/basm/commands"
)

func main() {
	os.Exit(commands.Execute())
}
