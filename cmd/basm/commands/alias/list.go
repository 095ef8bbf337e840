package alias

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/entry"
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
	Short: "List aliases",
	Long:  `List the aliases defined in the rc file, in file order.`,
	Example: `  # List all aliases
  basm alias list

  # Output as JSON
  basm alias list --json`,
	RunE: runList,
}

// aliasOutput represents an alias in JSON output format.
type aliasOutput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func runList(c *cobra.Command, _ []string) error {
	return runListWithWriter(logging.FromContext(c.Context()), os.Stdout)
}

func runListWithWriter(log *slog.Logger, w io.Writer) error {
	store := cmdutil.NewRCStore(log)
	entries, err := store.List(entry.KindAlias)
	if err != nil {
		return errors.Wrapf(err, "reading %s", store.Path())
	}

	if listJSON {
		output := make([]aliasOutput, len(entries))
		for i, e := range entries {
			output[i] = aliasOutput{Name: e.Key, Value: e.Value}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(output), "encoding output")
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "%sno aliases in %s%s\n", colorGray, store.Path(), colorReset)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sVALUE%s\n", colorBold, colorReset, colorBold, colorReset)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s%s%s\t%s\n", colorGreen, e.Key, colorReset, e.Value)
	}
	return tw.Flush()
}
