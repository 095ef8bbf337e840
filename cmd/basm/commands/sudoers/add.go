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
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <rule>",
	Short: "Add a sudoers rule",
	Long: `Add a rule to the sudoers file. The rule is matched by exact
content: adding a rule that is already present is a no-op, and the
validator is not even invoked.

The new content is validated with visudo against a staging copy before
the live file is replaced.`,
	Example: `  # Quote the whole rule
  sudo basm sudoers add "alice ALL=(ALL) NOPASSWD: /usr/bin/systemctl"

  # Unquoted words are joined with spaces
  sudo basm sudoers add deploy ALL=NOPASSWD: /usr/bin/docker`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(c *cobra.Command, args []string) error {
	return runAddWithWriter(logging.FromContext(c.Context()), args, os.Stdout)
}

func runAddWithWriter(log *slog.Logger, args []string, w io.Writer) error {
	rule := strings.Join(args, " ")

	editor := cmdutil.NewSudoersEditor(log)
	if err := editor.Add(rule); err != nil {
		var valErr *sudoers.ValidationError
		if errors.As(err, &valErr) {
			return errors.NewUserError(err, "the live sudoers file was not modified")
		}
		if errors.Is(err, errors.ErrInvalidValue) {
			return errors.NewUserError(err, "rules must be single non-comment lines")
		}
		return errors.Wrap(err, "adding sudoers rule")
	}

	fmt.Fprintf(w, "%s✓ rule installed in %s%s\n", colorGreen, editor.Path(), colorReset)
	return nil
}
