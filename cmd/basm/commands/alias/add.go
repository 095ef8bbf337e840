package alias

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/entry"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/logging"
)

func init() {
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name> <value>",
	Short: "Add or replace an alias",
	Long: `Add an alias to the rc file, or replace it in place if an alias
with the same name already exists. The previous file content is
snapshotted first.`,
	Example: `  # Add an alias
  basm alias add ll "ls -la"

  # Values with quotes are handled for you
  basm alias add say "echo don't panic"`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(c *cobra.Command, args []string) error {
	return runAddWithWriter(logging.FromContext(c.Context()), args, os.Stdout)
}

func runAddWithWriter(log *slog.Logger, args []string, w io.Writer) error {
	name, value := args[0], args[1]

	store := cmdutil.NewRCStore(log)
	if err := store.Add(entry.KindAlias, name, value); err != nil {
		if errors.Is(err, errors.ErrInvalidKey) {
			return errors.NewUserError(err, "alias names cannot contain '=', whitespace, or quotes")
		}
		if errors.Is(err, errors.ErrInvalidValue) {
			return errors.NewUserError(err, "alias values cannot span multiple lines")
		}
		return errors.Wrapf(err, "adding alias %s", name)
	}

	fmt.Fprintf(w, "%s✓ alias %s added to %s%s\n", colorGreen, name, store.Path(), colorReset)
	return nil
}
