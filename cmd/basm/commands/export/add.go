package export

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
	Short: "Add or replace an exported variable",
	Long: `Add an exported environment variable to the rc file, or replace it
in place if the variable is already exported. The previous file content
is snapshotted first.`,
	Example: `  # Export a variable
  basm export add EDITOR vim

  # Values with spaces or dollar signs are quoted for you
  basm export add PS1 "\$ "`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func runAdd(c *cobra.Command, args []string) error {
	return runAddWithWriter(logging.FromContext(c.Context()), args, os.Stdout)
}

func runAddWithWriter(log *slog.Logger, args []string, w io.Writer) error {
	name, value := args[0], args[1]

	store := cmdutil.NewRCStore(log)
	if err := store.Add(entry.KindExport, name, value); err != nil {
		if errors.Is(err, errors.ErrInvalidKey) {
			return errors.NewUserError(err, "variable names must be valid shell identifiers")
		}
		if errors.Is(err, errors.ErrInvalidValue) {
			return errors.NewUserError(err, "values cannot span multiple lines")
		}
		return errors.Wrapf(err, "exporting %s", name)
	}

	fmt.Fprintf(w, "%s✓ export %s added to %s%s\n", colorGreen, name, store.Path(), colorReset)
	return nil
}
