package commands

import "github.com/thoreinstein/basm/cmd/basm/commands/sudoers"

func init() {
	rootCmd.AddCommand(sudoers.Cmd)
}
