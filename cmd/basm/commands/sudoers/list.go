package sudoers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/logging"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sudoers rules",
	Long: `List the rules in the sudoers file, in file order. Comments and
blank lines are skipped.`,
	Example: `  # List all rules
  sudo basm sudoers list

  # Output as JSON
  sudo basm sudoers list --json`,
	RunE: runList,
}

func runList(c *cobra.Command, _ []string) error {
	return runListWithWriter(logging.FromContext(c.Context()), os.Stdout)
}

func runListWithWriter(log *slog.Logger, w io.Writer) error {
	editor := cmdutil.NewSudoersEditor(log)
	entries, err := editor.List()
	if err != nil {
		return errors.Wrapf(err, "reading %s", editor.Path())
	}

	if listJSON {
		rules := make([]string, len(entries))
		for i, e := range entries {
			rules[i] = e.Value
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(rules), "encoding output")
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "%sno rules in %s%s\n", colorGray, editor.Path(), colorReset)
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(w, e.Value)
	}
	return nil
}
