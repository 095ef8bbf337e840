package sudoers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/basm/internal/errors"
)

// writeScript writes an executable shell script to use as a fake visudo.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-visudo")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestVisudoAccepts(t *testing.T) {
	v := NewVisudo(writeScript(t, "exit 0\n"))
	assert.NoError(t, v.Validate("/dev/null"))
}

func TestVisudoRejectsWithDiagnostics(t *testing.T) {
	v := NewVisudo(writeScript(t, "echo \"$1: syntax error\" >&2\nexit 1\n"))

	err := v.Validate("/tmp/staged")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Output, "syntax error")
}

func TestVisudoExecutableMissing(t *testing.T) {
	v := NewVisudo(filepath.Join(t.TempDir(), "does-not-exist"))

	err := v.Validate("/dev/null")
	require.Error(t, err)

	// Not a validation verdict: the checker simply could not run.
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}
