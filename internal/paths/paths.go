// Package paths provides default path resolution for the files basm
// manages: the shell rc file, the sudoers file, and the backup directory.
//
// Defaults follow the XDG Base Directory Specification via
// github.com/adrg/xdg where a spec-defined location exists. The rc file
// default depends on the login shell:
//
//	| Shell | RC file                     |
//	|-------|-----------------------------|
//	| zsh   | ~/.zshrc                    |
//	| fish  | ~/.config/fish/config.fish  |
//	| other | ~/.bashrc                   |
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/basm/internal/errors"
)

// AppName is used for directory naming under the XDG base directories.
const AppName = "basm"

// DefaultSudoersPath is the system sudoers file.
const DefaultSudoersPath = "/etc/sudoers"

// DefaultDirPerm is the permission for newly created directories (private).
const DefaultDirPerm = 0o700

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm (0700) is used. It is
// idempotent; an existing directory is not an error.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string when it
// cannot be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DefaultConfigDir returns the directory holding basm's own config file.
// Returns: <ConfigHome>/basm/
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultBackupDir returns the default snapshot directory.
// Returns: <DataHome>/basm/backups/
func DefaultBackupDir() string {
	return filepath.Join(xdg.DataHome, AppName, "backups")
}

// DefaultRCFile returns the rc file for the given login shell path
// (the value of $SHELL). Unknown or empty shells fall back to ~/.bashrc.
func DefaultRCFile(shell string) string {
	home := Home()
	if home == "" {
		return ""
	}
	switch filepath.Base(shell) {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return filepath.Join(home, ".bashrc")
	}
}
