// Package export provides commands for managing shell environment exports.
package export

import "github.com/spf13/cobra"

// Color constants for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Cmd is the parent command for all export subcommands.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Manage shell environment exports",
	Long: `Manage "export NAME=VALUE" lines in your shell rc file.

Adding a variable that is already exported replaces it in place,
preserving its position in the file. Everything else is left byte for
byte as it was.`,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}
