package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedExt(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"test.png", true},
		{"test.PNG", true},
		{"test.jpg", true},
		{"test.jpeg", true},
		{"test.webp", true},
		{"test.bmp", true},
		{"test.gif", true},
		{"test.tga", true},
		{"test.avif", true},
		{"dir/test.TIFF", true},
		{"test.txt", false},
		{"test.zip", false},
		{"png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, isSupportedExt(tt.path))
		})
	}
}

func TestKindForExt(t *testing.T) {
	tests := []struct {
		path string
		kind SourceKind
		ok   bool
	}{
		{"a.zip", SourceZip, true},
		{"a.CBZ", SourceZip, true},
		{"a.rar", SourceRar, true},
		{"a.cbr", SourceRar, true},
		{"a.7z", SourceSevenZip, true},
		{"a.cb7", SourceSevenZip, true},
		{"a.pdf", SourcePdf, true},
		{"a.png", 0, false},
	}

	for _, tt := range tests {
		kind, ok := kindForExt(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		if tt.ok {
			assert.Equal(t, tt.kind, kind, tt.path)
			assert.True(t, isContainerExt(tt.path), tt.path)
		}
	}
}

func TestOpenSourceZip(t *testing.T) {
	path := writeZip(t, filepath.Join(t.TempDir(), "book.cbz"),
		namedEntries("b.jpg", "a.png", "notes.txt", "c10.png", "c2.png", "sub/")...)

	src, start, err := openSource(path, SortNatural)
	require.NoError(t, err)

	assert.Equal(t, SourceZip, src.Kind)
	assert.Equal(t, "book.cbz", src.Name())
	assert.Equal(t, 0, start)
	assert.Equal(t, []string{"a.png", "b.jpg", "c2.png", "c10.png"}, src.Pages)
}

func TestOpenSourceZipEntryOrder(t *testing.T) {
	path := writeZip(t, filepath.Join(t.TempDir(), "book.zip"),
		namedEntries("b.jpg", "a.png", "c10.png", "c2.png")...)

	src, _, err := openSource(path, SortEntryOrder)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg", "a.png", "c10.png", "c2.png"}, src.Pages)
}

func TestOpenSourceDirectoryPivot(t *testing.T) {
	dir := touchFiles(t, t.TempDir(), "p10.png", "p2.png", "p1.png", "readme.txt")

	src, start, err := openSource(filepath.Join(dir, "p2.png"), SortNatural)
	require.NoError(t, err)

	assert.Equal(t, SourceDirectory, src.Kind)
	assert.Equal(t, dir, src.Path)
	require.Len(t, src.Pages, 3)
	assert.Equal(t, "p1.png", filepath.Base(src.Pages[0]))
	assert.Equal(t, "p10.png", filepath.Base(src.Pages[2]))
	assert.Equal(t, 1, start)
}

func TestOpenSourceErrors(t *testing.T) {
	root := t.TempDir()

	t.Run("no images", func(t *testing.T) {
		dir := touchFiles(t, filepath.Join(root, "empty"), "readme.txt")

		_, _, err := openSource(dir, SortNatural)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoImages))

		var openErr *OpenError
		require.True(t, errors.As(err, &openErr))
		assert.Equal(t, "No images found in selection.", openErr.Message())
	})

	t.Run("archive without images", func(t *testing.T) {
		path := writeZip(t, filepath.Join(root, "text.zip"), namedEntries("a.txt")...)
		_, _, err := openSource(path, SortNatural)
		assert.True(t, errors.Is(err, ErrNoImages))
	})

	t.Run("unsupported format", func(t *testing.T) {
		touchFiles(t, root, "notes.txt")
		_, _, err := openSource(filepath.Join(root, "notes.txt"), SortNatural)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))

		var openErr *OpenError
		require.True(t, errors.As(err, &openErr))
		assert.Equal(t, "Could not open file.", openErr.Message())
	})

	t.Run("missing path", func(t *testing.T) {
		_, _, err := openSource(filepath.Join(root, "nope.zip"), SortNatural)
		var openErr *OpenError
		assert.True(t, errors.As(err, &openErr))
	})

	t.Run("corrupt archive", func(t *testing.T) {
		touchFiles(t, root, "broken.zip")
		_, _, err := openSource(filepath.Join(root, "broken.zip"), SortNatural)
		var openErr *OpenError
		assert.True(t, errors.As(err, &openErr))
	})
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, dedupe(nil))
}

func TestPdfPageID(t *testing.T) {
	n, err := parsePdfPageID(pdfPageID(12))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"page_1", "pdf_page_", "pdf_page_-1", "pdf_page_x"} {
		_, err := parsePdfPageID(bad)
		assert.True(t, errors.Is(err, ErrEntryNotFound), bad)
	}
}
