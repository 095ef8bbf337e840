package commands

import "github.com/thoreinstein/basm/cmd/basm/commands/alias"

func init() {
	rootCmd.AddCommand(alias.Cmd)
}
