// Package alias provides commands for managing shell aliases.
package alias

import "github.com/spf13/cobra"

// Color constants for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Cmd is the parent command for all alias subcommands.
var Cmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage shell aliases",
	Long: `Manage "alias NAME=VALUE" lines in your shell rc file.

Adding an alias that already exists replaces it in place, preserving
its position in the file. Everything else in the file, including
comments and unrelated lines, is left byte for byte as it was.`,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}
