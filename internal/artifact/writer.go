// Package artifact provides the file-write collaborator used by generation steps.
//
// Steps never touch the filesystem directly; every emitted file goes through
// a [Writer]. This keeps the execution engine testable with [Recorder], an
// in-memory fake, and concentrates path handling in one place.
//
// Key types:
//   - [Writer] is the write interface consumed by step actions
//   - [FSWriter] writes into a destination root on the local filesystem
//   - [Recorder] records writes in memory for tests
//   - [ConflictError] signals a refused overwrite
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer is the single mutation point for generated artifacts.
//
// Write stores content at relPath below the writer's destination root,
// creating parent directories as needed. When overwrite is false and the
// target already exists, Write fails with [ConflictError] and leaves the
// existing file untouched. The returned path is the resolved destination
// path of the artifact.
type Writer interface {
	Write(relPath string, content []byte, overwrite bool) (string, error)
}

// ConflictError is returned when a write targets an existing artifact and
// overwrite was not requested. It is recoverable: the engine records the
// step as failed and continues with independent steps.
type ConflictError struct {
	// Path is the destination path that already exists.
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("artifact already exists: %s (re-run with --force to overwrite)", e.Path)
}

// FSWriter writes artifacts below a destination root directory.
type FSWriter struct {
	root string
}

// NewFSWriter creates an [FSWriter] rooted at the given destination directory.
func NewFSWriter(root string) *FSWriter {
	return &FSWriter{root: root}
}

// Root returns the destination root directory.
func (w *FSWriter) Root() string {
	return w.root
}

// Write implements [Writer]. Paths must be relative and must not escape the
// destination root.
func (w *FSWriter) Write(relPath string, content []byte, overwrite bool) (string, error) {
	cleaned, err := cleanRelPath(relPath)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.root, cleaned)

	if !overwrite {
		if _, statErr := os.Stat(fullPath); statErr == nil {
			return "", &ConflictError{Path: fullPath}
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", cleaned, err)
	}

	return fullPath, nil
}

// cleanRelPath normalizes a relative artifact path and rejects anything that
// would escape the destination root.
func cleanRelPath(relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("artifact path must not be empty")
	}
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("artifact path must be relative: %s", relPath)
	}

	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact path escapes destination root: %s", relPath)
	}

	return cleaned, nil
}
