package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/backup"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/logging"
)

var (
	restoreNoRC      bool
	restoreNoSudoers bool
)

func init() {
	restoreCmd.Flags().BoolVar(&restoreNoRC, "no-rc", false,
		"skip the rc file")
	restoreCmd.Flags().BoolVar(&restoreNoSudoers, "no-sudoers", false,
		"skip the sudoers file")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the most recent snapshots",
	Long: `Restore the rc file and the sudoers file from their most recent
snapshots.

If the snapshot recorded that the file did not exist, restoring removes
the file. Sudoers content is re-validated with visudo before it replaces
the live file, in case the snapshot predates a sudo upgrade or was
tampered with.`,
	Example: `  # Restore both targets
  basm restore

  # Restore only the sudoers file
  sudo basm restore --no-rc

  See Also:
    basm backup      - Create snapshots
    basm backup list - List available snapshots`,
	RunE: runRestore,
}

func runRestore(c *cobra.Command, _ []string) error {
	return runRestoreWithWriter(logging.FromContext(c.Context()), os.Stdout)
}

func runRestoreWithWriter(log *slog.Logger, w io.Writer) error {
	if restoreNoRC && restoreNoSudoers {
		return errors.NewUserError(
			errors.New("nothing to restore"),
			"drop one of --no-rc and --no-sudoers")
	}

	cfg := cmdutil.Config()
	mgr := cmdutil.NewBackupManager()

	if !restoreNoRC {
		restored, err := mgr.Restore(cfg.RCFile)
		if err != nil {
			return errors.Wrapf(err, "restoring %s", cfg.RCFile)
		}
		if restored {
			fmt.Fprintf(w, "%s✓ %s restored%s\n", colorGreen, cfg.RCFile, colorReset)
		} else {
			fmt.Fprintf(w, "%s%s: no snapshots%s\n", colorYellow, cfg.RCFile, colorReset)
		}
	}

	if !restoreNoSudoers {
		if err := restoreSudoers(log, w, mgr, cfg.SudoersPath); err != nil {
			return err
		}
	}

	return nil
}

// restoreSudoers restores the sudoers file through the editor's
// validated commit path instead of writing the snapshot directly.
func restoreSudoers(log *slog.Logger, w io.Writer, mgr *backup.Manager, path string) error {
	snap, err := mgr.Latest(path)
	if err != nil {
		if errors.Is(err, backup.ErrNoSnapshots) {
			fmt.Fprintf(w, "%s%s: no snapshots%s\n", colorYellow, path, colorReset)
			return nil
		}
		return errors.Wrapf(err, "restoring %s", path)
	}

	content, existed, err := mgr.Content(snap)
	if err != nil {
		return errors.Wrapf(err, "reading snapshot %s", snap.ID)
	}

	if !existed {
		// The snapshot recorded absence. Snapshot the current state,
		// then remove the live file.
		if _, err := mgr.Backup(path); err != nil {
			return errors.Wrapf(err, "backing up %s", path)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", path)
		}
		fmt.Fprintf(w, "%s✓ %s restored (removed)%s\n", colorGreen, path, colorReset)
		return nil
	}

	if err := cmdutil.NewSudoersEditor(log).Apply(content); err != nil {
		return errors.Wrapf(err, "restoring %s", path)
	}

	fmt.Fprintf(w, "%s✓ %s restored%s\n", colorGreen, path, colorReset)
	return nil
}
