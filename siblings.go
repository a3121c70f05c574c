package main

import (
	"os"
	"path/filepath"
	"strings"
)

// scanFolder lists the entries of dir that can be opened as a source:
// supported containers and non-hidden directories, in natural order.
// Unreadable folders yield an empty list.
func scanFolder(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		debugLog("scanFolder %s: %v", dir, err)
		return nil
	}

	var items []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if !strings.HasPrefix(name, ".") {
				items = append(items, filepath.Join(dir, name))
			}
			continue
		}
		if isContainerExt(name) {
			items = append(items, filepath.Join(dir, name))
		}
	}
	naturalSort(items)
	return items
}

// listSubdirs lists the non-hidden directories inside dir in natural order
func listSubdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		debugLog("listSubdirs %s: %v", dir, err)
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	naturalSort(dirs)
	return dirs
}

// stepInList finds current in items and returns the entry delta positions
// away. ok is false when current is missing or the step leaves the list.
func stepInList(items []string, current string, delta int) (string, bool) {
	current = filepath.Clean(current)
	for i, item := range items {
		if filepath.Clean(item) != current {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(items) {
			return "", false
		}
		return items[j], true
	}
	return "", false
}

// adjacentSource returns the sibling container or folder next to
// sourcePath in its parent directory
func adjacentSource(sourcePath string, delta int) (string, bool) {
	return stepInList(scanFolder(filepath.Dir(sourcePath)), sourcePath, delta)
}

// adjacentFolder returns the sibling directory of folder in its parent
func adjacentFolder(folder string, delta int) (string, bool) {
	folder = filepath.Clean(folder)
	parent := filepath.Dir(folder)
	if parent == folder {
		return "", false
	}
	return stepInList(listSubdirs(parent), folder, delta)
}

// sourceFolder returns the folder a source belongs to: the directory
// itself for loose images, otherwise the directory holding the file
func sourceFolder(src *Source) string {
	if src.Kind == SourceDirectory {
		return src.Path
	}
	return filepath.Dir(src.Path)
}
