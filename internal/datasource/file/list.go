// Package file contains helpers for using local files as datasources:
// discovering snapshot files in a directory and opening them.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListFiles returns the paths of regular files directly under dir whose name
// ends in suffix, sorted by name. Subdirectories are not descended into and
// a directory whose name happens to end in suffix is skipped.
//
// An empty directory yields an empty slice and no error; a missing or
// unreadable directory is an error.
func ListFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, suffix) || name == suffix {
			continue
		}
		if e.IsDir() {
			continue
		}
		if !e.Type().IsRegular() {
			// Follow symlinks so linked snapshot files still count.
			st, err := os.Stat(filepath.Join(dir, name))
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}
