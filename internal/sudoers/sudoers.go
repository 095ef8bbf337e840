// Package sudoers edits the sudoers file with a modify-validate-swap
// protocol. Proposed content is written to a staging file and checked by
// an external visudo-style validator; only content that passed validation
// ever replaces the live file, via an atomic rename. A malformed sudoers
// file can lock an administrator out of privilege escalation, so this is
// the one place basm refuses to write anything unchecked.
package sudoers

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/basm/internal/backup"
	"github.com/thoreinstein/basm/internal/entry"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/pkg/fileutil"
)

// defaultPerm matches the conventional sudoers permissions, used when the
// live file does not exist yet.
const defaultPerm = 0o440

// Editor applies rule changes to the live sudoers file.
type Editor struct {
	path      string
	validator Validator
	backups   *backup.Manager
	log       *slog.Logger
}

// New creates an Editor for the sudoers file at path.
func New(path string, validator Validator, backups *backup.Manager, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	return &Editor{
		path:      path,
		validator: validator,
		backups:   backups,
		log:       log,
	}
}

// Path returns the live sudoers path the editor operates on.
func (e *Editor) Path() string {
	return e.path
}

// Add inserts a rule line. Rules match by exact content, so adding an
// already-present rule is a no-op that never touches the file.
func (e *Editor) Add(rule string) error {
	f, err := e.read()
	if err != nil {
		return err
	}

	updated, err := f.UpsertRule(rule)
	if err != nil {
		return err
	}

	if updated.Serialize() == f.Serialize() {
		e.log.Debug("rule already present", "path", e.path)
		return nil
	}

	return e.Apply([]byte(updated.Serialize()))
}

// Remove deletes all rule lines matching rule exactly and returns how
// many were removed. Zero removals means "no matching rule" and performs
// no validation or write.
func (e *Editor) Remove(rule string) (int, error) {
	if err := entry.ValidateRule(rule); err != nil {
		return 0, err
	}

	f, err := e.read()
	if err != nil {
		return 0, err
	}

	updated, removed := f.RemoveRule(rule)
	if removed == 0 {
		return 0, nil
	}

	if err := e.Apply([]byte(updated.Serialize())); err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns the rule lines of the live file: every non-empty,
// non-comment line, in file order.
func (e *Editor) List() ([]entry.Entry, error) {
	f, err := e.read()
	if err != nil {
		return nil, err
	}
	return f.List(), nil
}

// Apply replaces the live file with content after validating it:
//
//  1. Write content to a staging file next to the live path.
//  2. Run the external validator against the staging file. Rejection
//     aborts the whole operation with a *ValidationError; the live file
//     is untouched.
//  3. Snapshot the current live file.
//  4. Atomically rename the staging file over the live path.
//
// Apply is also the commit path for restoring sudoers snapshots, so a
// corrupt or stale snapshot can never bypass validation either.
func (e *Editor) Apply(content []byte) error {
	dir := filepath.Dir(e.path)

	staging, err := os.CreateTemp(dir, ".basm-sudoers-*")
	if err != nil {
		return errors.Wrap(err, "creating staging file")
	}
	stagingName := staging.Name()
	defer func() {
		// Remove the staging file unless the rename consumed it.
		if _, statErr := os.Stat(stagingName); statErr == nil {
			os.Remove(stagingName)
		}
	}()

	if _, err := staging.Write(content); err != nil {
		staging.Close()
		return errors.Wrap(err, "writing staging file")
	}
	if err := staging.Chmod(e.perm()); err != nil {
		staging.Close()
		return errors.Wrap(err, "setting staging permissions")
	}
	if err := staging.Close(); err != nil {
		return errors.Wrap(err, "closing staging file")
	}

	if err := e.validator.Validate(stagingName); err != nil {
		return err
	}
	e.log.Debug("staged sudoers content validated", "staging", stagingName)

	if _, err := e.backups.Backup(e.path); err != nil {
		return errors.Wrap(err, "snapshotting sudoers file")
	}

	// The rename is the commit point; the platform guarantees it is
	// indivisible with respect to concurrent readers.
	if err := os.Rename(stagingName, e.path); err != nil {
		return errors.Wrap(err, "replacing sudoers file")
	}

	e.log.Info("sudoers file updated", "path", e.path)
	return nil
}

func (e *Editor) read() (entry.File, error) {
	data, err := fileutil.ReadFileOrEmpty(e.path)
	if err != nil {
		return entry.File{}, errors.Wrapf(err, "reading %s", e.path)
	}
	return entry.Parse(entry.KindSudoers, string(data)), nil
}

func (e *Editor) perm() os.FileMode {
	if info, err := os.Stat(e.path); err == nil {
		return info.Mode().Perm()
	}
	return defaultPerm
}
