// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsutil provides filesystem helpers shared across stages.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrDirMissing is returned when a directory is still absent after it was created.
var ErrDirMissing = errors.New("directory missing after creation")

// maxDirAttempts bounds WithDir to one creation and one retry.
const maxDirAttempts = 2

// WithDir runs fn once dir exists. If dir is missing, onMissing (when non-nil)
// is called, the directory is created, and the existence check is repeated a
// single time. fn is never called more than once.
func WithDir(dir string, onMissing func(dir string), fn func() error) error {
	for attempt := 0; attempt < maxDirAttempts; attempt++ {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s exists and is not a directory", dir)
			}
			return fn()
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking directory %s: %w", dir, err)
		}
		if attempt == maxDirAttempts-1 {
			break
		}
		if onMissing != nil {
			onMissing(dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return fmt.Errorf("%s: %w", dir, ErrDirMissing)
}
