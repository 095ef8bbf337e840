package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/shell"
)

func init() {
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Source the rc file in a fresh shell",
	Long: `Spawn your login shell and source the rc file in it, so syntax
errors introduced outside basm show up immediately.

A parent process cannot change an existing shell's environment; to pick
up changes in the current session, source the rc file there.`,
	Example: `  # Check the rc file loads cleanly
  basm apply

  # Then, in your current shell
  source ~/.bashrc`,
	RunE: runApply,
}

func runApply(_ *cobra.Command, _ []string) error {
	return runApplyWithWriter(os.Stdout)
}

func runApplyWithWriter(w io.Writer) error {
	cfg := cmdutil.Config()

	if _, err := os.Stat(cfg.RCFile); os.IsNotExist(err) {
		fmt.Fprintf(w, "%s%s does not exist yet; nothing to apply%s\n",
			colorYellow, cfg.RCFile, colorReset)
		return nil
	}

	sh := shell.Current()
	if err := shell.Reload(sh, cfg.RCFile); err != nil {
		return errors.NewUserError(
			errors.Wrapf(err, "sourcing %s with %s", cfg.RCFile, sh),
			"fix the rc file or restore the last snapshot with 'basm restore'")
	}

	fmt.Fprintf(w, "%s✓ %s loads cleanly in %s%s\n", colorGreen, cfg.RCFile, sh, colorReset)
	fmt.Fprintf(w, "%sRun 'source %s' to update the current shell.%s\n",
		colorGray, cfg.RCFile, colorReset)
	return nil
}
