package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/errors"
)

var (
	backupNoRC      bool
	backupNoSudoers bool
)

func init() {
	backupCmd.Flags().BoolVar(&backupNoRC, "no-rc", false,
		"skip the rc file")
	backupCmd.Flags().BoolVar(&backupNoSudoers, "no-sudoers", false,
		"skip the sudoers file")
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the managed files",
	Long: `Create snapshots of the rc file and the sudoers file.

Snapshots are also created automatically before every mutation; this
command records the current state on demand. A missing target file is
recorded too, so a later restore can put the absence back.`,
	Example: `  # Snapshot both targets
  basm backup

  # Snapshot only the rc file
  basm backup --no-sudoers

  See Also:
    basm backup list - List available snapshots
    basm restore     - Restore the most recent snapshots`,
	RunE: runBackup,
}

func runBackup(_ *cobra.Command, _ []string) error {
	return runBackupWithWriter(os.Stdout)
}

func runBackupWithWriter(w io.Writer) error {
	if backupNoRC && backupNoSudoers {
		return errors.NewUserError(
			errors.New("nothing to back up"),
			"drop one of --no-rc and --no-sudoers")
	}

	cfg := cmdutil.Config()
	mgr := cmdutil.NewBackupManager()

	targets := make([]string, 0, 2)
	if !backupNoRC {
		targets = append(targets, cfg.RCFile)
	}
	if !backupNoSudoers {
		targets = append(targets, cfg.SudoersPath)
	}

	for _, target := range targets {
		snap, err := mgr.Backup(target)
		if err != nil {
			return errors.Wrapf(err, "backing up %s", target)
		}

		if snap.Existed {
			fmt.Fprintf(w, "%s✓ %s: snapshot %s%s\n",
				colorGreen, target, snap.ID, colorReset)
		} else {
			fmt.Fprintf(w, "%s✓ %s: snapshot %s (file absent)%s\n",
				colorYellow, target, snap.ID, colorReset)
		}
	}

	return nil
}
