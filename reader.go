package main

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/bodgit/sevenzip"
	"github.com/gen2brain/go-fitz"
	"github.com/klauspost/compress/zip"
	"github.com/nwaples/rardecode"
)

// defaultPdfHeight is the render height used before the viewport is known
const defaultPdfHeight = 1600

// readPageBytes returns the raw encoded bytes of one page. PDF sources have
// no raw bytes; use renderPdfPage for them.
func readPageBytes(src *Source, id string) ([]byte, error) {
	switch src.Kind {
	case SourceDirectory:
		return os.ReadFile(id)
	case SourceZip:
		return readZipEntry(src.Path, id)
	case SourceRar:
		return readRarEntry(src.Path, id)
	case SourceSevenZip:
		return read7zEntry(src.Path, id)
	default:
		return nil, fmt.Errorf("%s source has no raw page bytes: %w", src.Kind, ErrUnsupportedFormat)
	}
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", entryPath, archivePath, ErrEntryNotFound)
}

// readRarEntry walks the archive from the start until entryPath is found.
// RAR has no random access, so every page read pays for the walk.
func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := rardecode.OpenReader(archivePath, "")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", entryPath, archivePath, ErrEntryNotFound)
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", entryPath, archivePath, ErrEntryNotFound)
}

// renderPdfPage rasterizes one page so that its height matches height,
// keeping the page's aspect ratio
func renderPdfPage(docPath, id string, height float32) (image.Image, error) {
	n, err := parsePdfPageID(id)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.New(docPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if n >= doc.NumPage() {
		return nil, fmt.Errorf("page %d of %s: %w", n, docPath, ErrEntryNotFound)
	}

	// Bound is reported at 72 DPI
	bound, err := doc.Bound(n)
	if err != nil {
		return nil, err
	}
	if bound.Dy() <= 0 {
		return nil, fmt.Errorf("page %d of %s has empty bounds", n, docPath)
	}

	targetH := float64(height)
	if targetH < 1 {
		targetH = defaultPdfHeight
	}
	dpi := 72 * targetH / float64(bound.Dy())

	return doc.ImageDPI(n, dpi)
}
