package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/basm/internal/config"
)

func TestRCFileCheck(t *testing.T) {
	dir := t.TempDir()

	t.Run("writable file passes", func(t *testing.T) {
		path := filepath.Join(dir, "rc")
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))

		res := (&RCFileCheck{Path: path}).Run()
		assert.Equal(t, SeverityPass, res.Status)
	})

	t.Run("missing file warns", func(t *testing.T) {
		res := (&RCFileCheck{Path: filepath.Join(dir, "missing")}).Run()
		assert.Equal(t, SeverityWarning, res.Status)
	})

	t.Run("directory fails", func(t *testing.T) {
		res := (&RCFileCheck{Path: dir}).Run()
		assert.Equal(t, SeverityError, res.Status)
	})

	t.Run("unwritable file fails", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits not enforced")
		}
		path := filepath.Join(dir, "readonly")
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o444))

		res := (&RCFileCheck{Path: path}).Run()
		assert.Equal(t, SeverityError, res.Status)
	})
}

func TestSudoersCheck(t *testing.T) {
	dir := t.TempDir()

	t.Run("readable file passes", func(t *testing.T) {
		path := filepath.Join(dir, "sudoers")
		require.NoError(t, os.WriteFile(path, []byte("Defaults env_reset\n"), 0o644))

		res := (&SudoersCheck{Path: path}).Run()
		assert.Equal(t, SeverityPass, res.Status)
	})

	t.Run("missing file warns", func(t *testing.T) {
		res := (&SudoersCheck{Path: filepath.Join(dir, "missing")}).Run()
		assert.Equal(t, SeverityWarning, res.Status)
	})
}

func TestValidatorCheck(t *testing.T) {
	t.Run("found on PATH", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("uses sh as a stand-in executable")
		}
		res := (&ValidatorCheck{Executable: "sh"}).Run()
		assert.Equal(t, SeverityPass, res.Status)
	})

	t.Run("missing executable fails", func(t *testing.T) {
		res := (&ValidatorCheck{Executable: "basm-no-such-validator"}).Run()
		assert.Equal(t, SeverityError, res.Status)
		assert.NotEmpty(t, res.FixHint)
	})
}

func TestBackupDirCheck(t *testing.T) {
	t.Run("creates and probes directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "backups")

		res := (&BackupDirCheck{Dir: dir}).Run()
		assert.Equal(t, SeverityPass, res.Status)

		// Probe file must not linger.
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRunnerSummary(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		RCFile:      filepath.Join(dir, "rc"),
		SudoersPath: filepath.Join(dir, "sudoers"),
		BackupDir:   filepath.Join(dir, "backups"),
		Visudo:      "basm-no-such-validator",
	}

	report := NewRunner(DefaultChecks(cfg)...).Run()
	require.Len(t, report.Results, 4)

	total := report.Summary.Passed + report.Summary.Warnings + report.Summary.Errors
	assert.Equal(t, 4, total)
	assert.GreaterOrEqual(t, report.Summary.Errors, 1, "missing validator must be an error")
}
