package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/backup"
	"github.com/thoreinstein/basm/internal/errors"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Output in JSON format")
	backupCmd.AddCommand(backupListCmd)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots",
	Long: `List snapshots of the rc file and the sudoers file, grouped by
target and ordered most recent first.`,
	Example: `  # List all snapshots
  basm backup list

  # Output as JSON
  basm backup list --json

  See Also:
    basm backup  - Create snapshots
    basm restore - Restore the most recent snapshots`,
	RunE: runBackupList,
}

// snapshotOutput represents a single snapshot in JSON output.
type snapshotOutput struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Existed   bool      `json:"existed"`
	Version   string    `json:"basm_version"`
}

func runBackupList(_ *cobra.Command, _ []string) error {
	return runBackupListWithWriter(os.Stdout)
}

func runBackupListWithWriter(w io.Writer) error {
	cfg := cmdutil.Config()
	mgr := cmdutil.NewBackupManager()

	targets := []string{cfg.RCFile, cfg.SudoersPath}

	if backupListJSON {
		return outputBackupListJSON(w, mgr, targets)
	}
	return outputBackupListTabular(w, mgr, targets)
}

// listSnapshots returns the snapshots for target. A target that was
// never snapshotted is an empty list, not an error.
func listSnapshots(mgr *backup.Manager, target string) ([]backup.Snapshot, error) {
	snaps, err := mgr.List(target)
	if err != nil {
		if errors.Is(err, backup.ErrNoSnapshots) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "listing snapshots for %s", target)
	}
	return snaps, nil
}

func outputBackupListJSON(w io.Writer, mgr *backup.Manager, targets []string) error {
	output := make(map[string][]snapshotOutput)

	for _, target := range targets {
		snaps, err := listSnapshots(mgr, target)
		if err != nil {
			return err
		}

		infos := make([]snapshotOutput, len(snaps))
		for i, s := range snaps {
			infos[i] = snapshotOutput{
				ID:        s.ID,
				CreatedAt: s.CreatedAt,
				Existed:   s.Existed,
				Version:   s.BASMVersion,
			}
		}
		output[target] = infos
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding output")
}

func outputBackupListTabular(w io.Writer, mgr *backup.Manager, targets []string) error {
	hasSnapshots := false

	for i, target := range targets {
		snaps, err := listSnapshots(mgr, target)
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%sTarget: %s%s\n", colorCyan+colorBold, target, colorReset)

		if len(snaps) == 0 {
			fmt.Fprintf(w, "  %s(no snapshots)%s\n", colorGray, colorReset)
			continue
		}
		hasSnapshots = true

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  %sID%s\t%sCREATED%s\t%sSTATE%s\n",
			colorBold, colorReset, colorBold, colorReset, colorBold, colorReset)

		for _, s := range snaps {
			state := "present"
			if !s.Existed {
				state = "absent"
			}
			fmt.Fprintf(tw, "  %s%s%s\t%s\t%s\n",
				colorGreen, s.ID, colorReset,
				s.CreatedAt.Local().Format(time.DateTime), state)
		}
		tw.Flush()
	}

	if !hasSnapshots {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No snapshots yet. Run 'basm backup' to create one.")
	}

	return nil
}
