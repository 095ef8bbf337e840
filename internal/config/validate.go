package config

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/basm/internal/errors"
)

// ErrInvalidPath indicates a configured path value is malformed.
var ErrInvalidPath = errors.New("invalid path")

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	fields := []struct {
		name  string
		value string
	}{
		{"rc_file", cfg.RCFile},
		{"sudoers_path", cfg.SudoersPath},
		{"backup_dir", cfg.BackupDir},
	}

	for _, f := range fields {
		if err := validatePath(f.value); err != nil {
			errs = append(errs, &PathError{Field: f.name, Path: f.value, Err: err})
		}
	}

	if cfg.Visudo == "" {
		errs = append(errs, &PathError{Field: "visudo", Err: errors.Wrap(ErrInvalidPath, "validator executable must not be empty")})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return ErrInvalidPath
	}

	// Null bytes are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents a validation error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
