// Package fileutil writes command output files.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for output files that may
// carry API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for documents intended to be
// committed and read by other tools.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode for created parent directories.
const DirMode os.FileMode = 0o755

// SanitizeOutputPath cleans path, resolves it to an absolute path and
// refuses to write through a symlink. Paths that do not exist yet are
// accepted.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("fileutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("fileutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("fileutil: output path is a directory: %s", abs)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", fmt.Errorf("fileutil: cannot stat path: %w", err)
	}
	return abs, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	abs, err := SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), DirMode); err != nil {
		return fmt.Errorf("fileutil: creating directory: %w", err)
	}
	if err := os.WriteFile(abs, data, perm); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	return nil
}

// WriteIfChanged writes data to path only when the file's current content
// differs, keeping the existing permission bits. It reports whether it wrote.
func WriteIfChanged(path string, data []byte, perm os.FileMode) (bool, error) {
	current, err := os.ReadFile(path) //nolint:gosec // G304 - path is the command's own output file
	switch {
	case err == nil:
		if bytes.Equal(current, data) {
			return false, nil
		}
		if info, statErr := os.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return false, fmt.Errorf("fileutil: reading %s: %w", path, err)
	}
	if err := WriteFile(path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}
