package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	dir := t.TempDir()

	t.Run("normal file", func(t *testing.T) {
		path := filepath.Join(dir, "small")
		want := []byte("export PATH=/usr/bin\n")
		if err := os.WriteFile(path, want, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := ReadFileWithLimit(path)
		if err != nil {
			t.Fatalf("ReadFileWithLimit() error = %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("content = %q, want %q", got, want)
		}
	})

	t.Run("file too large", func(t *testing.T) {
		path := filepath.Join(dir, "large")
		if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := ReadFileWithLimit(path)
		if !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("error = %v, want ErrFileTooLarge", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFileWithLimit(filepath.Join(dir, "missing"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist in chain", err)
		}
	})
}

func TestReadFileOrEmpty(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is empty", func(t *testing.T) {
		got, err := ReadFileOrEmpty(filepath.Join(dir, "missing"))
		if err != nil {
			t.Fatalf("ReadFileOrEmpty() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("content = %q, want empty", got)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(dir, "rc")
		if err := os.WriteFile(path, []byte("alias g=git\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadFileOrEmpty(path)
		if err != nil {
			t.Fatalf("ReadFileOrEmpty() error = %v", err)
		}
		if string(got) != "alias g=git\n" {
			t.Errorf("content = %q", got)
		}
	})
}
