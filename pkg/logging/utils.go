/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log file retention for bytehunt. Compresses finished log files on request
and removes the oldest files beyond the configured limit.
*/

package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LogManager applies compression and retention to a log directory
type LogManager struct {
	logDir   string
	maxFiles int
	compress bool
}

// NewLogManager creates a new log manager
func NewLogManager(logDir string, maxFiles int, compress bool) *LogManager {
	return &LogManager{
		logDir:   logDir,
		maxFiles: maxFiles,
		compress: compress,
	}
}

// Maintain compresses path when compression is enabled and then prunes old files
func (lm *LogManager) Maintain(path string) error {
	if lm.compress && path != "" {
		if err := lm.compressFile(path); err != nil {
			return fmt.Errorf("failed to compress %s: %w", path, err)
		}
	}
	return lm.CleanupOldLogs()
}

// compressFile gzips a log file and removes the original
func (lm *LogManager) compressFile(path string) error {
	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	compressed, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer compressed.Close()

	gzipWriter := gzip.NewWriter(compressed)
	if _, err := io.Copy(gzipWriter, source); err != nil {
		gzipWriter.Close()
		return err
	}
	if err := gzipWriter.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}

// CleanupOldLogs removes the oldest log files beyond maxFiles
// File names embed their creation time, so name order is age order
func (lm *LogManager) CleanupOldLogs() error {
	files, err := lm.ListLogs()
	if err != nil {
		return err
	}
	if lm.maxFiles <= 0 || len(files) <= lm.maxFiles {
		return nil
	}

	for _, file := range files[:len(files)-lm.maxFiles] {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to remove old log %s: %w", file, err)
		}
	}
	return nil
}

// ListLogs returns the managed log files oldest first
func (lm *LogManager) ListLogs() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, filePrefix+"*.log*"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.TrimSuffix(files[i], ".gz") < strings.TrimSuffix(files[j], ".gz")
	})
	return files, nil
}
