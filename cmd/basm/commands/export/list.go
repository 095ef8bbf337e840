package export

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
	Short: "List exported variables",
	Long:  `List the variables exported in the rc file, in file order.`,
	Example: `  # List all exports
  basm export list

  # Output as JSON
  basm export list --json`,
	RunE: runList,
}

// exportOutput represents an export in JSON output format.
type exportOutput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func runList(c *cobra.Command, _ []string) error {
	return runListWithWriter(logging.FromContext(c.Context()), os.Stdout)
}

func runListWithWriter(log *slog.Logger, w io.Writer) error {
	store := cmdutil.NewRCStore(log)
	entries, err := store.List(entry.KindExport)
	if err != nil {
		return errors.Wrapf(err, "reading %s", store.Path())
	}

	if listJSON {
		output := make([]exportOutput, len(entries))
		for i, e := range entries {
			output[i] = exportOutput{Name: e.Key, Value: e.Value}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(output), "encoding output")
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "%sno exports in %s%s\n", colorGray, store.Path(), colorReset)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sVALUE%s\n", colorBold, colorReset, colorBold, colorReset)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s%s%s\t%s\n", colorGreen, e.Key, colorReset, e.Value)
	}
	return tw.Flush()
}
