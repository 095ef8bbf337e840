package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/basm/internal/config"
)

// DefaultChecks returns the standard check set for a resolved configuration.
func DefaultChecks(cfg *config.Config) []Check {
	return []Check{
		&RCFileCheck{Path: cfg.RCFile},
		&SudoersCheck{Path: cfg.SudoersPath},
		&ValidatorCheck{Executable: cfg.Visudo},
		&BackupDirCheck{Dir: cfg.BackupDir},
	}
}

// RCFileCheck verifies the rc file is usable: either it exists and is
// writable, or its parent directory allows creating it.
type RCFileCheck struct {
	Path string
}

func (c *RCFileCheck) Name() string { return "rc-file" }

func (c *RCFileCheck) Run() *CheckResult {
	info, err := os.Stat(c.Path)
	switch {
	case err == nil && info.IsDir():
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityError,
			Message: fmt.Sprintf("%s is a directory", c.Path),
		}
	case err == nil:
		if !writable(c.Path) {
			return &CheckResult{
				Name:    c.Name(),
				Status:  SeverityError,
				Message: fmt.Sprintf("%s is not writable", c.Path),
				FixHint: "check file ownership and permissions",
			}
		}
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityPass,
			Message: fmt.Sprintf("%s exists and is writable", c.Path),
		}
	case os.IsNotExist(err):
		// A missing rc file is created on first add.
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityWarning,
			Message: fmt.Sprintf("%s does not exist yet (created on first add)", c.Path),
		}
	default:
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot stat %s: %v", c.Path, err),
		}
	}
}

// SudoersCheck verifies the sudoers file can be read. Reading usually
// requires root; a permission error is a warning, not a failure, since
// the user may simply be running unprivileged.
type SudoersCheck struct {
	Path string
}

func (c *SudoersCheck) Name() string { return "sudoers-file" }

func (c *SudoersCheck) Run() *CheckResult {
	f, err := os.Open(c.Path)
	switch {
	case err == nil:
		f.Close()
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityPass,
			Message: fmt.Sprintf("%s is readable", c.Path),
		}
	case os.IsPermission(err):
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityWarning,
			Message: fmt.Sprintf("%s is not readable by the current user", c.Path),
			FixHint: "sudoers operations need to run as root",
		}
	case os.IsNotExist(err):
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityWarning,
			Message: fmt.Sprintf("%s does not exist", c.Path),
		}
	default:
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot open %s: %v", c.Path, err),
		}
	}
}

// ValidatorCheck verifies the sudoers syntax validator can be found.
type ValidatorCheck struct {
	Executable string
}

func (c *ValidatorCheck) Name() string { return "validator" }

func (c *ValidatorCheck) Run() *CheckResult {
	resolved, err := exec.LookPath(c.Executable)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityError,
			Message: fmt.Sprintf("validator %q not found", c.Executable),
			FixHint: "install sudo or set BASM_VISUDO to a visudo-compatible checker",
		}
	}
	return &CheckResult{
		Name:    c.Name(),
		Status:  SeverityPass,
		Message: fmt.Sprintf("validator found at %s", resolved),
	}
}

// BackupDirCheck verifies the backup directory exists or can be created,
// and that a file can actually be written inside it.
type BackupDirCheck struct {
	Dir string
}

func (c *BackupDirCheck) Name() string { return "backup-dir" }

func (c *BackupDirCheck) Run() *CheckResult {
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot create %s: %v", c.Dir, err),
		}
	}

	probe, err := os.CreateTemp(c.Dir, ".basm-doctor-*")
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  SeverityError,
			Message: fmt.Sprintf("%s is not writable: %v", c.Dir, err),
			FixHint: "check directory ownership and permissions",
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return &CheckResult{
		Name:    c.Name(),
		Status:  SeverityPass,
		Message: fmt.Sprintf("%s is writable", c.Dir),
	}
}

// writable reports whether the current user can open path for writing.
func writable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// DescribeTargets returns a short human-readable summary of the
// configured targets, used by the doctor command header.
func DescribeTargets(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rc file:     %s\n", cfg.RCFile)
	fmt.Fprintf(&b, "sudoers:     %s\n", cfg.SudoersPath)
	fmt.Fprintf(&b, "backup dir:  %s\n", cfg.BackupDir)
	fmt.Fprintf(&b, "validator:   %s\n", cfg.Visudo)
	return b.String()
}
