package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirWriter writes export files into a flat directory. Names carry a
// second-resolution timestamp, so a collision means two runs raced the same
// second; O_EXCL turns that into a loud error instead of a silent overwrite.
type DirWriter struct {
	dir string
}

// NewDirWriter constructs a DirWriter rooted at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{dir: dir}
}

// Write creates the file and flushes it to disk before returning.
func (w *DirWriter) Write(name, content string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("exporter: create export dir: %w", err)
	}

	path := filepath.Join(w.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("exporter: create %s: %w", name, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", fmt.Errorf("exporter: write %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return "", fmt.Errorf("exporter: sync %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("exporter: close %s: %w", name, err)
	}
	return path, nil
}
