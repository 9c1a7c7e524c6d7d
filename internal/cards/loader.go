package cards

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrEmptyAssetSet = errors.New("no image found")

// ListImages returns the finished card images of dir with extension ext,
// in pagination order.
func ListImages(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyAssetSet, dir)
	}

	if err := SortDescending(out); err != nil {
		return nil, err
	}
	return out, nil
}
