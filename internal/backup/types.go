package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/basm/internal/errors"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// Sentinel errors for snapshot operations.
var (
	// ErrNoSnapshots indicates no snapshots exist for the target file.
	ErrNoSnapshots = errors.New("no snapshots found")

	// ErrSnapshotCorrupted indicates content integrity verification failed.
	// This occurs when the content's SHA256 hash doesn't match the manifest.
	ErrSnapshotCorrupted = errors.New("snapshot corrupted")
)

// Snapshot describes one immutable copy of a target file's content.
// It is stored as manifest.json in the snapshot directory, next to the
// copied content.
type Snapshot struct {
	// Version is the manifest format version for forward compatibility.
	Version int `json:"version"`

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`

	// TargetPath is the absolute path of the file that was snapshotted.
	TargetPath string `json:"target_path"`

	// Existed records whether the target file existed at snapshot time.
	// A snapshot of a missing file is a valid prior state: restoring it
	// removes the target file.
	Existed bool `json:"existed"`

	// SHA256Hash is the hex-encoded SHA256 hash of the content.
	// Empty when Existed is false.
	SHA256Hash string `json:"sha256_hash,omitempty"`

	// Mode is the target file's permission bits at snapshot time.
	Mode fs.FileMode `json:"mode,omitempty"`

	// BASMVersion is the version of basm that took the snapshot.
	BASMVersion string `json:"basm_version"`

	// ID is the snapshot identifier (timestamp format: 20260829T100712,
	// with a numeric suffix on collision). Populated when loading from
	// disk but not stored in JSON.
	ID string `json:"-"`
}
