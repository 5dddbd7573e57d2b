// Package fileutil provides the small set of filesystem helpers the
// platform providers rely on: existence checks used as install evidence and
// scoped temporary files for handler-database exports.
package fileutil

import (
	"fmt"
	"os"
)

// Exists reports whether path exists, regardless of type.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FirstExisting returns the first path in candidates that exists, or "".
func FirstExisting(candidates []string) string {
	for _, path := range candidates {
		if Exists(path) {
			return path
		}
	}
	return ""
}

// TempFile creates an empty temporary file and returns its path together
// with a cleanup function. The cleanup function is safe to call on every
// exit path, including after the file has already been removed.
func TempFile(pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}

	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}
