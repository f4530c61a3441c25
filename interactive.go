package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// runInteractiveFinder walks the current directory and lets the user
// multi-select the files and directories to count. A nil result with a nil
// error means the selection was aborted.
func runInteractiveFinder() ([]string, error) {
	candidates := []string{}
	root := "."

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // keep scanning
		}
		if path == root {
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning for files: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no files or directories found to select from")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select inputs to count. Tab to multi-select, Enter to confirm."
			}
			path := candidates[i]
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", path, statErr)
			}
			fileType := "File"
			if info.IsDir() {
				fileType = "Directory"
			}
			return fmt.Sprintf("Path: %s\nType: %s\nSize: %d bytes", path, fileType, info.Size())
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
