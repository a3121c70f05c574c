package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanFolder(t *testing.T) {
	root := t.TempDir()
	touchFiles(t, root, "vol10.cbz", "vol2.zip", "vol1.rar", "cover.png", "notes.txt", "extra.pdf")
	touchFiles(t, filepath.Join(root, "loose"), "01.png")
	touchFiles(t, filepath.Join(root, ".hidden"), "01.png")

	items := scanFolder(root)

	var names []string
	for _, item := range items {
		names = append(names, filepath.Base(item))
	}
	assert.Equal(t, []string{"extra.pdf", "loose", "vol1.rar", "vol2.zip", "vol10.cbz"}, names)

	assert.Empty(t, scanFolder(filepath.Join(root, "missing")))
}

func TestStepInList(t *testing.T) {
	items := []string{"/a/1", "/a/2", "/a/3"}

	next, ok := stepInList(items, "/a/2", 1)
	assert.True(t, ok)
	assert.Equal(t, "/a/3", next)

	prev, ok := stepInList(items, "/a/2/", -1)
	assert.True(t, ok)
	assert.Equal(t, "/a/1", prev)

	_, ok = stepInList(items, "/a/3", 1)
	assert.False(t, ok)
	_, ok = stepInList(items, "/a/1", -1)
	assert.False(t, ok)
	_, ok = stepInList(items, "/b/1", 1)
	assert.False(t, ok)
}

func TestAdjacentFolder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"ch1", "ch2", "ch10", ".git"} {
		touchFiles(t, filepath.Join(root, name))
	}

	next, ok := adjacentFolder(filepath.Join(root, "ch2"), 1)
	assert.True(t, ok)
	assert.Equal(t, "ch10", filepath.Base(next))

	_, ok = adjacentFolder(filepath.Join(root, "ch10"), 1)
	assert.False(t, ok, "hidden folders are skipped")

	assert.Equal(t, filepath.Join(root, "ch1"),
		sourceFolder(&Source{Path: filepath.Join(root, "ch1", "v1.zip"), Kind: SourceZip}))
	assert.Equal(t, filepath.Join(root, "ch1"),
		sourceFolder(&Source{Path: filepath.Join(root, "ch1"), Kind: SourceDirectory}))
}
