// Package rcfile applies entry-store operations to the shell rc file for
// alias and export statements.
package rcfile

import (
	"log/slog"
	"os"

	"github.com/thoreinstein/basm/internal/backup"
	"github.com/thoreinstein/basm/internal/entry"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/pkg/fileutil"
)

// defaultPerm is used when the rc file does not exist yet.
const defaultPerm = 0o644

// Store edits alias and export lines in one rc file. Every mutating call
// is a fresh read-modify-write cycle; writes are atomic, so a failed
// write leaves the original file untouched.
type Store struct {
	path    string
	backups *backup.Manager // nil disables pre-mutation snapshots
	log     *slog.Logger
}

// New creates a Store for the rc file at path. A nil backup manager
// disables pre-mutation snapshots.
func New(path string, backups *backup.Manager, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		path:    path,
		backups: backups,
		log:     log,
	}
}

// Path returns the rc file path the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Add inserts or replaces the entry for key. A missing rc file is treated
// as empty content, not an error.
func (s *Store) Add(kind entry.Kind, key, value string) error {
	f, err := s.read(kind)
	if err != nil {
		return err
	}

	updated, err := f.Upsert(key, value)
	if err != nil {
		return err
	}

	s.log.Debug("upserted entry", "kind", kind, "key", key, "path", s.path)
	return s.write(updated)
}

// Remove deletes all entries for key and returns how many lines were
// removed. Zero removals means "no matching entry" and writes nothing.
func (s *Store) Remove(kind entry.Kind, key string) (int, error) {
	f, err := s.read(kind)
	if err != nil {
		return 0, err
	}

	updated, removed := f.Remove(key)
	if removed == 0 {
		return 0, nil
	}

	s.log.Debug("removed entries", "kind", kind, "key", key, "count", removed)
	if err := s.write(updated); err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns the recognized entries of the given kind in file order.
func (s *Store) List(kind entry.Kind) ([]entry.Entry, error) {
	f, err := s.read(kind)
	if err != nil {
		return nil, err
	}
	return f.List(), nil
}

func (s *Store) read(kind entry.Kind) (entry.File, error) {
	data, err := fileutil.ReadFileOrEmpty(s.path)
	if err != nil {
		return entry.File{}, errors.Wrapf(err, "reading %s", s.path)
	}
	return entry.Parse(kind, string(data)), nil
}

func (s *Store) write(f entry.File) error {
	if s.backups != nil {
		if _, err := s.backups.Backup(s.path); err != nil {
			return errors.Wrap(err, "snapshotting rc file")
		}
	}

	perm := os.FileMode(defaultPerm)
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := fileutil.AtomicWriteFile(s.path, []byte(f.Serialize()), perm); err != nil {
		return errors.Wrapf(err, "writing %s", s.path)
	}
	return nil
}
