package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/gen2brain/go-fitz"
	"github.com/klauspost/compress/zip"
	"github.com/nwaples/rardecode"
)

const pdfPagePrefix = "pdf_page_"

// Source is an opened container: a fixed, ordered list of page ids.
// A Source is never mutated; opening something else replaces it.
type Source struct {
	Path  string // archive or document path, or the folder for SourceDirectory
	Kind  SourceKind
	Pages []string
}

// Name returns the display name of the source
func (s *Source) Name() string {
	return filepath.Base(s.Path)
}

// indexOf returns the position of id in the page list, or -1
func (s *Source) indexOf(id string) int {
	for i, p := range s.Pages {
		if p == id {
			return i
		}
	}
	return -1
}

// openSource lists the pages of path. When path is a plain image file the
// folder containing it becomes the source and start is that file's index.
func openSource(path string, sortMethod int) (src *Source, start int, err error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, 0, &OpenError{Path: path, Err: err}
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, 0, &OpenError{Path: absPath, Err: err}
	}

	target := absPath
	startAt := ""
	var kind SourceKind

	switch k, ok := kindForExt(absPath); {
	case info.IsDir():
		kind = SourceDirectory
	case ok:
		kind = k
	case isSupportedExt(absPath):
		// Pivot: the folder containing this image becomes the source
		kind = SourceDirectory
		target = filepath.Dir(absPath)
		startAt = absPath
	default:
		return nil, 0, &OpenError{Path: absPath, Err: ErrUnsupportedFormat}
	}

	var pages []string
	switch kind {
	case SourceZip:
		pages, err = listZip(target)
	case SourceRar:
		pages, err = listRar(target)
	case SourceSevenZip:
		pages, err = list7z(target)
	case SourcePdf:
		pages, err = listPdf(target)
	case SourceDirectory:
		pages, err = listDirectory(target)
	}
	if err != nil {
		return nil, 0, &OpenError{Path: target, Err: err}
	}

	pages = GetSortStrategy(sortMethod).Sort(dedupe(pages))
	if len(pages) == 0 {
		return nil, 0, &OpenError{Path: target, Err: ErrNoImages}
	}

	src = &Source{Path: target, Kind: kind, Pages: pages}
	if startAt != "" {
		if i := src.indexOf(startAt); i >= 0 {
			start = i
		}
	}

	debugLog("Opened %s source %s: %d pages, start %d", kind, target, len(pages), start)
	return src, start, nil
}

// dedupe drops repeated ids, keeping the first occurrence
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func listZip(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, f.Name)
		}
	}
	return images, nil
}

func listRar(archivePath string) ([]string, error) {
	r, err := rardecode.OpenReader(archivePath, "")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, header.Name)
		}
	}
	return images, nil
}

func list7z(archivePath string) ([]string, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, f.Name)
		}
	}
	return images, nil
}

func listPdf(docPath string) ([]string, error) {
	doc, err := fitz.New(docPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]string, 0, n)
	for i := 0; i < n; i++ {
		pages = append(pages, pdfPageID(i))
	}
	return pages, nil
}

// listDirectory collects image files directly inside dir (non-recursive)
func listDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSupportedExt(entry.Name()) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	return images, nil
}

func pdfPageID(index int) string {
	return pdfPagePrefix + strconv.Itoa(index)
}

func parsePdfPageID(id string) (int, error) {
	if !strings.HasPrefix(id, pdfPagePrefix) {
		return 0, fmt.Errorf("%q: %w", id, ErrEntryNotFound)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, pdfPagePrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q: %w", id, ErrEntryNotFound)
	}
	return n, nil
}
