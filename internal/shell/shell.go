// Package shell provides login shell detection and rc reloading.
package shell

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/thoreinstein/basm/internal/errors"
)

// Current returns the user's login shell from $SHELL, falling back to
// /bin/sh when unset.
func Current() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

// Reload spawns the shell to source the rc file, streaming its output.
// A sourced file only affects the spawned shell, not the caller's
// session; this mirrors what the user would do by hand and surfaces any
// errors in the rc file.
func Reload(shellPath, rcPath string) error {
	// POSIX shells spell it "."; fish only understands "source".
	sourceCmd := "."
	if filepath.Base(shellPath) == "fish" {
		sourceCmd = "source"
	}

	cmd := exec.Command(shellPath, "-c", fmt.Sprintf("%s %q", sourceCmd, rcPath))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "sourcing %s", rcPath)
	}
	return nil
}
