package sudoers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/basm/internal/backup"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/logging"
)

// stubValidator records validated paths and returns a canned result.
type stubValidator struct {
	reject bool
	output string
	paths  []string
}

func (v *stubValidator) Validate(path string) error {
	v.paths = append(v.paths, path)
	if v.reject {
		return &ValidationError{Output: v.output}
	}
	return nil
}

func newEditor(t *testing.T, initial string, v Validator) (*Editor, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sudoers")
	if initial != "" {
		require.NoError(t, os.WriteFile(path, []byte(initial), 0o440))
	}
	mgr := backup.NewManager(filepath.Join(dir, "backups"))
	return New(path, v, mgr, logging.ForTest(t)), path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const rule = "alice ALL=(ALL) NOPASSWD: /usr/bin/systemctl"

func TestAddAppendsValidatedRule(t *testing.T) {
	v := &stubValidator{}
	e, path := newEditor(t, "Defaults env_reset\n", v)

	require.NoError(t, e.Add(rule))

	assert.Equal(t, "Defaults env_reset\n"+rule+"\n", readFile(t, path))
	require.Len(t, v.paths, 1)
	assert.NotEqual(t, path, v.paths[0], "validator must run against the staging file, not the live file")
}

func TestAddRejectedLeavesLiveFileUntouched(t *testing.T) {
	initial := "Defaults env_reset\n"
	v := &stubValidator{reject: true, output: "syntax error near line 2"}
	e, path := newEditor(t, initial, v)

	err := e.Add(rule)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Output, "syntax error")

	assert.Equal(t, initial, readFile(t, path), "live file must be byte-identical after rejected add")

	// The staging file must not linger next to the live file.
	entries, readErr := os.ReadDir(filepath.Dir(path))
	require.NoError(t, readErr)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".basm-sudoers-") {
			t.Errorf("staging file left behind: %s", entry.Name())
		}
	}
}

func TestAddExistingRuleIsNoOp(t *testing.T) {
	initial := rule + "\n"
	v := &stubValidator{}
	e, path := newEditor(t, initial, v)

	require.NoError(t, e.Add(rule))

	assert.Equal(t, initial, readFile(t, path))
	assert.Empty(t, v.paths, "unchanged content must not be staged or validated")
}

func TestAddInvalidRule(t *testing.T) {
	v := &stubValidator{}
	e, _ := newEditor(t, "Defaults env_reset\n", v)

	for _, bad := range []string{"", "  ", "a\nb", "# comment"} {
		err := e.Add(bad)
		assert.True(t, errors.Is(err, errors.ErrInvalidValue), "Add(%q) error = %v", bad, err)
	}
	assert.Empty(t, v.paths)
}

func TestAddSnapshotsLiveFileBeforeSwap(t *testing.T) {
	initial := "Defaults env_reset\n"
	dir := t.TempDir()
	path := filepath.Join(dir, "sudoers")
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o440))

	mgr := backup.NewManager(filepath.Join(dir, "backups"))
	e := New(path, &stubValidator{}, mgr, logging.ForTest(t))

	require.NoError(t, e.Add(rule))

	snap, err := mgr.Latest(path)
	require.NoError(t, err)

	content, existed, err := mgr.Content(snap)
	require.NoError(t, err)
	require.True(t, existed)
	assert.Equal(t, initial, string(content), "snapshot must hold pre-mutation content")
}

func TestRemove(t *testing.T) {
	v := &stubValidator{}
	e, path := newEditor(t, "Defaults env_reset\n"+rule+"\n", v)

	removed, err := e.Remove(rule)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, "Defaults env_reset\n", readFile(t, path))
	assert.Len(t, v.paths, 1)
}

func TestRemoveAbsentRuleIsNoOp(t *testing.T) {
	initial := "Defaults env_reset\n"
	v := &stubValidator{}
	e, path := newEditor(t, initial, v)

	removed, err := e.Remove("bob ALL=(ALL) ALL")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, initial, readFile(t, path))
	assert.Empty(t, v.paths, "no-op remove must not stage or validate")
}

func TestRemoveRejectedLeavesLiveFileUntouched(t *testing.T) {
	initial := "Defaults env_reset\n" + rule + "\n"
	v := &stubValidator{reject: true, output: "parse error"}
	e, path := newEditor(t, initial, v)

	_, err := e.Remove(rule)
	require.Error(t, err)

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, initial, readFile(t, path))
}

func TestList(t *testing.T) {
	e, _ := newEditor(t, "# header\n\nDefaults env_reset\n"+rule+"\n", &stubValidator{})

	entries, err := e.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Defaults env_reset", entries[0].Value)
	assert.Equal(t, rule, entries[1].Value)
}

func TestListMissingFile(t *testing.T) {
	e, _ := newEditor(t, "", &stubValidator{})

	entries, err := e.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApplyPreservesLivePermissions(t *testing.T) {
	e, path := newEditor(t, "Defaults env_reset\n", &stubValidator{})

	require.NoError(t, e.Apply([]byte("Defaults env_reset\nDefaults mail_badpass\n")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o440), info.Mode().Perm())
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Output: ">>> /tmp/stage: syntax error near line 3 <<<\n"}
	assert.Contains(t, err.Error(), "sudoers validation failed")
	assert.Contains(t, err.Error(), "syntax error near line 3")

	empty := &ValidationError{}
	assert.Equal(t, "sudoers validation failed", empty.Error())
}
