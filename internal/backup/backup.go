// Package backup snapshots target files before risky mutations and
// restores the most recent snapshot on demand.
//
// Each snapshot lives in its own timestamped directory:
//
//	<root>/<target name>/<timestamp>/
//	    manifest.json
//	    content        (absent when the target did not exist)
//
// Snapshots are append-only: they are never overwritten, and nothing
// prunes them automatically. Integrity is verified against the manifest
// hash before any restore.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/paths"
	"github.com/thoreinstein/basm/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// contentFile is the name of the copied content inside a snapshot directory.
const contentFile = "content"

// Manager handles snapshot creation, listing, and restoration.
type Manager struct {
	rootDir string
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager storing snapshots under rootDir.
func NewManager(rootDir string, opts ...Option) *Manager {
	m := &Manager{
		rootDir: rootDir,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup snapshots the current content of path and returns the snapshot.
// A missing target file is not an error; the snapshot records the absence
// so a later restore can reproduce it.
func (m *Manager) Backup(path string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("target path is required")
	}

	snap := &Snapshot{
		Version:     ManifestVersion,
		CreatedAt:   m.now().UTC(),
		TargetPath:  path,
		BASMVersion: Version,
	}

	var content []byte
	info, err := os.Stat(path)
	switch {
	case err == nil:
		content, err = fileutil.ReadFileWithLimit(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		sum := sha256.Sum256(content)
		snap.Existed = true
		snap.SHA256Hash = hex.EncodeToString(sum[:])
		snap.Mode = info.Mode().Perm()
	case os.IsNotExist(err):
		// Valid prior state: record the absence.
	default:
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	snapDir, id, err := m.createSnapshotDir(path)
	if err != nil {
		return nil, err
	}
	snap.ID = id

	if snap.Existed {
		if err := os.WriteFile(filepath.Join(snapDir, contentFile), content, 0o600); err != nil {
			return nil, errors.Wrap(err, "writing snapshot content")
		}
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(snapDir, "manifest.json"), snap); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	return snap, nil
}

// createSnapshotDir allocates a fresh timestamped directory for the
// target. IDs within the same second get a numeric suffix; existing
// snapshots are never reused or overwritten.
func (m *Manager) createSnapshotDir(path string) (dir, id string, err error) {
	targetDir := m.targetDir(path)
	if err := paths.EnsureDir(targetDir, 0); err != nil {
		return "", "", errors.Wrap(err, "creating snapshot directory")
	}

	base := m.now().Format("20060102T150405")
	id = base
	for n := 1; ; n++ {
		dir = filepath.Join(targetDir, id)
		mkErr := os.Mkdir(dir, paths.DefaultDirPerm)
		if mkErr == nil {
			return dir, id, nil
		}
		if !os.IsExist(mkErr) {
			return "", "", errors.Wrap(mkErr, "creating snapshot directory")
		}
		id = fmt.Sprintf("%s.%d", base, n)
	}
}

// Latest returns the most recent snapshot for path.
// Returns ErrNoSnapshots when none exist.
func (m *Manager) Latest(path string) (*Snapshot, error) {
	snaps, err := m.List(path)
	if err != nil {
		return nil, err
	}
	return &snaps[0], nil
}

// List returns all snapshots for path, newest first.
// Returns ErrNoSnapshots when none exist.
func (m *Manager) List(path string) ([]Snapshot, error) {
	targetDir := m.targetDir(path)

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshots
		}
		return nil, errors.Wrap(err, "reading snapshot directory")
	}

	snaps := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		snap, err := m.Get(path, entry.Name())
		if err != nil {
			// Skip invalid snapshot directories
			continue
		}
		snaps = append(snaps, *snap)
	}

	if len(snaps) == 0 {
		return nil, ErrNoSnapshots
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		// Same second: the suffixed ID is the later one.
		return strings.Compare(b.ID, a.ID)
	})

	return snaps, nil
}

// Get returns the manifest for a specific snapshot of path.
func (m *Manager) Get(path, id string) (*Snapshot, error) {
	if id == "" {
		return nil, errors.New("snapshot ID is required")
	}

	manifestPath := filepath.Join(m.targetDir(path), id, "manifest.json")

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoSnapshots, "snapshot %s not found", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	snap.ID = id
	return &snap, nil
}

// Content returns the verified content of a snapshot. For a snapshot
// that recorded a missing target it returns (nil, false, nil).
func (m *Manager) Content(snap *Snapshot) ([]byte, bool, error) {
	if !snap.Existed {
		return nil, false, nil
	}

	data, err := os.ReadFile(filepath.Join(m.targetDir(snap.TargetPath), snap.ID, contentFile))
	if err != nil {
		return nil, false, errors.Wrap(err, "reading snapshot content")
	}

	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != snap.SHA256Hash {
		return nil, false, errors.Wrapf(ErrSnapshotCorrupted, "snapshot %s hash mismatch", snap.ID)
	}

	return data, true, nil
}

// Restore writes the most recent snapshot of path back verbatim, or
// removes the file if the snapshot recorded that it did not exist.
// It reports whether a snapshot was found.
func (m *Manager) Restore(path string) (bool, error) {
	snap, err := m.Latest(path)
	if err != nil {
		if errors.Is(err, ErrNoSnapshots) {
			return false, nil
		}
		return false, err
	}

	content, existed, err := m.Content(snap)
	if err != nil {
		return true, err
	}

	if !existed {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return true, errors.Wrapf(err, "removing %s", path)
		}
		return true, nil
	}

	mode := snap.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := fileutil.AtomicWriteFile(path, content, mode); err != nil {
		return true, errors.Wrapf(err, "restoring %s", path)
	}

	return true, nil
}

// targetDir maps a target path to its snapshot directory under the root.
func (m *Manager) targetDir(path string) string {
	return filepath.Join(m.rootDir, targetDirName(path))
}

// targetDirName flattens an absolute path into a single directory name,
// e.g. /etc/sudoers -> etc_sudoers.
func targetDirName(path string) string {
	clean := filepath.Clean(path)
	clean = strings.TrimPrefix(clean, string(filepath.Separator))
	return strings.ReplaceAll(clean, string(filepath.Separator), "_")
}
