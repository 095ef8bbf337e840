package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCurrent(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	if got := Current(); got != "/usr/bin/zsh" {
		t.Errorf("Current() = %q, want /usr/bin/zsh", got)
	}

	t.Setenv("SHELL", "")
	if got := Current(); got != "/bin/sh" {
		t.Errorf("Current() = %q, want /bin/sh", got)
	}
}

func TestReload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	rc := filepath.Join(dir, "rc")
	marker := filepath.Join(dir, "marker")

	if err := os.WriteFile(rc, []byte("touch "+marker+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Reload("/bin/sh", rc); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("rc file was not sourced: %v", err)
	}
}

func TestReloadBadRC(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	rc := filepath.Join(dir, "rc")
	if err := os.WriteFile(rc, []byte("exit 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Reload("/bin/sh", rc); err == nil {
		t.Error("Reload() expected error for rc that exits non-zero")
	}
}
