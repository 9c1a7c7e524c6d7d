package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// EnsureParent creates the folder that will hold file.
func EnsureParent(file string) error {
	return EnsureDir(filepath.Dir(file))
}
