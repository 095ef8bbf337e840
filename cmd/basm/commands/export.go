package commands

import "github.com/thoreinstein/basm/cmd/basm/commands/export"

func init() {
	rootCmd.AddCommand(export.Cmd)
}
