package sudoers

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/logging"
	"github.com/thoreinstein/basm/internal/sudoers"
)

func init() {
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <rule>",
	Aliases: []string{"rm"},
	Short:   "Remove a sudoers rule",
	Long: `Remove a rule from the sudoers file, matched by exact content.
Removing a rule that is not present reports it and leaves the file
untouched.

The remaining content is validated with visudo against a staging copy
before the live file is replaced.`,
	Example: `  # Remove a rule (quote it exactly as listed)
  sudo basm sudoers remove "alice ALL=(ALL) NOPASSWD: /usr/bin/systemctl"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func runRemove(c *cobra.Command, args []string) error {
	return runRemoveWithWriter(logging.FromContext(c.Context()), args, os.Stdout)
}

func runRemoveWithWriter(log *slog.Logger, args []string, w io.Writer) error {
	rule := strings.Join(args, " ")

	editor := cmdutil.NewSudoersEditor(log)
	removed, err := editor.Remove(rule)
	if err != nil {
		var valErr *sudoers.ValidationError
		if errors.As(err, &valErr) {
			return errors.NewUserError(err, "the live sudoers file was not modified")
		}
		if errors.Is(err, errors.ErrInvalidValue) {
			return errors.NewUserError(err, "rules must be single non-comment lines")
		}
		return errors.Wrap(err, "removing sudoers rule")
	}

	if removed == 0 {
		fmt.Fprintf(w, "rule not found in %s\n", editor.Path())
		return nil
	}

	fmt.Fprintf(w, "%s✓ rule removed from %s%s\n", colorGreen, editor.Path(), colorReset)
	return nil
}
