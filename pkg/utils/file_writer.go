/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: file_writer.go
Description: Utility for writing result files. Handles timestamped file naming,
ensures parent directories exist and replaces files atomically so a reader never
observes a partially written report.
*/

package utils

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/afero"
)

// TimestampedName builds a file name such as 2024-06-11_01-30-00_bytehunt_3f2a.json
func TimestampedName(t time.Time, prefix, id, ext string) string {
	name := t.Format("2006-01-02_15-04-05") + "_" + prefix
	if id != "" {
		name += "_" + id
	}
	return name + "." + ext
}

// ResolvePath returns path itself, or a file called name inside it when path is a directory
func ResolvePath(fs afero.Fs, path, name string) string {
	if isDir, err := afero.IsDir(orOS(fs), path); err == nil && isDir {
		return filepath.Join(path, name)
	}
	return path
}

// WriteFileAtomic writes data to path on fs, creating parent directories as needed
// A nil fs means the operating system filesystem
func WriteFileAtomic(fs afero.Fs, path string, data []byte) error {
	fs = orOS(fs)

	// Ensure the parent directory exists
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if _, ok := fs.(*afero.OsFs); ok {
		if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
		return nil
	}

	// Other filesystems get the same write-then-rename sequence
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		fs.Remove(tmp)
		return fmt.Errorf("failed to replace file %s: %w", path, err)
	}
	return nil
}

func orOS(fs afero.Fs) afero.Fs {
	if fs == nil {
		return afero.NewOsFs()
	}
	return fs
}
