// Package writer exposes sinks for save emission.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileWriter writes save bytes to a filesystem path atomically.
// The target is never left half-written: content lands in a sibling
// temporary file first and is moved into place with a single rename.
type FileWriter struct {
	Path string

	// Backup copies an existing target to Path+".bak" before replacing it.
	Backup bool
}

// WriteSave writes b to the configured path via temp file + rename.
func (w *FileWriter) WriteSave(b []byte) error {
	if w.Backup {
		if err := backupExisting(w.Path); err != nil {
			return err
		}
	}

	// Temp file must live in the target directory for rename to be atomic.
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".savekit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(b); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}

	if syncErr := tmpFile.Sync(); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil // successfully closed, skip cleanup in defer

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}

	return nil
}

// backupExisting copies path to path+".bak" when path exists.
func backupExisting(path string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path + ".bak")
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	return dst.Close()
}
