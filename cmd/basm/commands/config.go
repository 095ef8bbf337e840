package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/config"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/paths"
	"github.com/thoreinstein/basm/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the resolved configuration: config file values, environment
overrides (BASM_RC_FILE, BASM_SUDOERS_PATH, BASM_BACKUP_DIR,
BASM_VISUDO), and built-in defaults.`,
	Example: `  # Show effective paths
  basm config

  # Create a starter config file
  basm config init

See Also: basm doctor`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter config file",
	Long: `Write the effective configuration to the config file so it can be
edited by hand. Fails if the file already exists.`,
	Example: `  # Create ~/.config/basm/config.yaml
  basm config init`,
	RunE: runConfigInit,
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	return runConfigShowWithWriter(os.Stdout)
}

func runConfigShowWithWriter(w io.Writer) error {
	data, err := yaml.Marshal(cmdutil.Config())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	fmt.Fprintf(w, "%s# %s%s\n", colorGray, config.ConfigFilePath(), colorReset)
	fmt.Fprint(w, string(data))
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	return runConfigInitWithWriter(os.Stdout)
}

func runConfigInitWithWriter(w io.Writer) error {
	path := config.ConfigFilePath()

	if _, err := os.Stat(path); err == nil {
		return errors.NewUserError(
			errors.Newf("config file already exists at %s", path),
			"edit it directly, or delete it first to regenerate")
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteYAML(path, cmdutil.Config(), 0o644); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	fmt.Fprintf(w, "%s✓ wrote %s%s\n", colorGreen, path, colorReset)
	return nil
}
