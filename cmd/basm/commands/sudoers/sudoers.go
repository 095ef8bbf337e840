// Package sudoers provides commands for managing sudoers rules.
package sudoers

import "github.com/spf13/cobra"

// Color constants for terminal output.
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Cmd is the parent command for all sudoers subcommands.
var Cmd = &cobra.Command{
	Use:   "sudoers",
	Short: "Manage sudoers rules",
	Long: `Manage rules in the system sudoers file.

Every change is written to a staging file and checked with visudo
before the live file is touched. If the validator rejects the result,
the live file is left exactly as it was and the validator's diagnostics
are printed. The previous content is snapshotted before each change.

These commands need to run as root to read and write the sudoers file.`,
	RunE: func(c *cobra.Command, _ []string) error {
		return c.Help()
	},
}
