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
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an exported variable",
	Long: `Remove an exported variable from the rc file. Removing a name that
is not present reports it and leaves the file untouched.`,
	Example: `  # Remove an export
  basm export remove EDITOR`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(c *cobra.Command, args []string) error {
	return runRemoveWithWriter(logging.FromContext(c.Context()), args, os.Stdout)
}

func runRemoveWithWriter(log *slog.Logger, args []string, w io.Writer) error {
	name := args[0]

	store := cmdutil.NewRCStore(log)
	removed, err := store.Remove(entry.KindExport, name)
	if err != nil {
		return errors.Wrapf(err, "removing export %s", name)
	}

	if removed == 0 {
		fmt.Fprintf(w, "no export named %s in %s\n", name, store.Path())
		return nil
	}

	fmt.Fprintf(w, "%s✓ export %s removed from %s%s\n", colorGreen, name, store.Path(), colorReset)
	return nil
}
