// Package cmdutil provides shared wiring for CLI commands.
// It exists to avoid import cycles between the root command and the
// noun subpackages (alias, export, sudoers).
package cmdutil

import (
	"log/slog"

	"github.com/thoreinstein/basm/internal/backup"
	"github.com/thoreinstein/basm/internal/config"
	"github.com/thoreinstein/basm/internal/rcfile"
	"github.com/thoreinstein/basm/internal/sudoers"
)

// cfg holds the configuration resolved by the root command.
var cfg *config.Config

// SetConfig stores the resolved configuration for subcommands.
// The root command calls this after config loading.
func SetConfig(c *config.Config) {
	cfg = c
}

// Config returns the resolved configuration. Before the root command
// has run (e.g. in tests exercising a subcommand directly) it falls
// back to the built-in defaults.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// NewBackupManager returns a snapshot manager rooted at the configured
// backup directory.
func NewBackupManager() *backup.Manager {
	return backup.NewManager(Config().BackupDir)
}

// NewRCStore returns the rc file store for the configured rc file,
// with automatic pre-mutation snapshots. Commands pass the logger
// carried on their context.
func NewRCStore(log *slog.Logger) *rcfile.Store {
	return rcfile.New(Config().RCFile, NewBackupManager(), log)
}

// NewSudoersEditor returns the sudoers editor for the configured
// sudoers file and validator executable.
func NewSudoersEditor(log *slog.Logger) *sudoers.Editor {
	c := Config()
	return sudoers.New(c.SudoersPath, sudoers.NewVisudo(c.Visudo), NewBackupManager(), log)
}
