package sudoers

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/config"
	"github.com/thoreinstein/basm/internal/logging"
)

const rule = "alice ALL=(ALL) NOPASSWD: /usr/bin/systemctl"

// setupConfig points the commands at a temp sudoers file. The validator
// is stubbed with true/false, which accept or reject any staging file.
func setupConfig(t *testing.T, visudo string) *config.Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub validators require a POSIX toolset")
	}

	dir := t.TempDir()
	cfg := &config.Config{
		RCFile:      filepath.Join(dir, ".bashrc"),
		SudoersPath: filepath.Join(dir, "sudoers"),
		BackupDir:   filepath.Join(dir, "backups"),
		Visudo:      visudo,
	}
	cmdutil.SetConfig(cfg)
	t.Cleanup(func() { cmdutil.SetConfig(nil) })
	return cfg
}

func TestSudoersAdd(t *testing.T) {
	cfg := setupConfig(t, "true")

	var out bytes.Buffer
	require.NoError(t, runAddWithWriter(logging.ForTest(t), []string{rule}, &out))

	data, err := os.ReadFile(cfg.SudoersPath)
	require.NoError(t, err)
	assert.Equal(t, rule+"\n", string(data))
	assert.Contains(t, out.String(), "rule installed")
}

func TestSudoersAdd_JoinsArgs(t *testing.T) {
	cfg := setupConfig(t, "true")

	var out bytes.Buffer
	require.NoError(t, runAddWithWriter(logging.ForTest(t), []string{"deploy", "ALL=NOPASSWD:", "/usr/bin/docker"}, &out))

	data, err := os.ReadFile(cfg.SudoersPath)
	require.NoError(t, err)
	assert.Equal(t, "deploy ALL=NOPASSWD: /usr/bin/docker\n", string(data))
}

func TestSudoersAdd_RejectedLeavesLiveUntouched(t *testing.T) {
	cfg := setupConfig(t, "false")
	original := "Defaults env_reset\n"
	require.NoError(t, os.WriteFile(cfg.SudoersPath, []byte(original), 0o440))

	var out bytes.Buffer
	err := runAddWithWriter(logging.ForTest(t), []string{rule}, &out)
	require.Error(t, err)

	data, readErr := os.ReadFile(cfg.SudoersPath)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(data))
}

func TestSudoersAdd_InvalidRule(t *testing.T) {
	setupConfig(t, "true")

	var out bytes.Buffer
	err := runAddWithWriter(logging.ForTest(t), []string{"# just a comment"}, &out)
	require.Error(t, err)
}

func TestSudoersRemove(t *testing.T) {
	cfg := setupConfig(t, "true")
	require.NoError(t, os.WriteFile(cfg.SudoersPath,
		[]byte("Defaults env_reset\n"+rule+"\n"), 0o440))

	var out bytes.Buffer
	require.NoError(t, runRemoveWithWriter(logging.ForTest(t), []string{rule}, &out))

	data, err := os.ReadFile(cfg.SudoersPath)
	require.NoError(t, err)
	assert.Equal(t, "Defaults env_reset\n", string(data))
}

func TestSudoersRemove_NotFound(t *testing.T) {
	cfg := setupConfig(t, "true")
	original := "Defaults env_reset\n"
	require.NoError(t, os.WriteFile(cfg.SudoersPath, []byte(original), 0o440))

	var out bytes.Buffer
	require.NoError(t, runRemoveWithWriter(logging.ForTest(t), []string{rule}, &out))
	assert.Contains(t, out.String(), "rule not found")

	data, err := os.ReadFile(cfg.SudoersPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestSudoersList(t *testing.T) {
	cfg := setupConfig(t, "true")
	content := "# managed by hand\nDefaults env_reset\n\n" + rule + "\n"
	require.NoError(t, os.WriteFile(cfg.SudoersPath, []byte(content), 0o440))

	var out bytes.Buffer
	require.NoError(t, runListWithWriter(logging.ForTest(t), &out))

	assert.Equal(t, "Defaults env_reset\n"+rule+"\n", out.String())
}
