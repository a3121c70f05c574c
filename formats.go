package main

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// imageExtensions is the allow-list of page file types
var imageExtensions = []string{"png", "jpg", "jpeg", "bmp", "webp", "gif", "tiff", "tga", "avif"}

// containerExtensions lists every file type that can be opened as a Source
// besides plain images
var containerExtensions = []string{"zip", "cbz", "rar", "cbr", "7z", "cb7", "pdf"}

var (
	imageGlob     = extGlob(imageExtensions)
	containerGlob = extGlob(containerExtensions)
)

func extGlob(exts []string) glob.Glob {
	return glob.MustCompile("*.{"+strings.Join(exts, ",")+"}", '/')
}

// isSupportedExt reports whether path names an allow-listed image file
func isSupportedExt(path string) bool {
	return imageGlob.Match(strings.ToLower(filepath.Base(path)))
}

// isContainerExt reports whether path names a supported archive or document
func isContainerExt(path string) bool {
	return containerGlob.Match(strings.ToLower(filepath.Base(path)))
}

// SourceKind identifies which container format backs a Source
type SourceKind int

const (
	SourceDirectory SourceKind = iota
	SourceZip
	SourceRar
	SourceSevenZip
	SourcePdf
)

func (k SourceKind) String() string {
	switch k {
	case SourceDirectory:
		return "directory"
	case SourceZip:
		return "zip"
	case SourceRar:
		return "rar"
	case SourceSevenZip:
		return "7z"
	case SourcePdf:
		return "pdf"
	default:
		return "unknown"
	}
}

// kindForExt maps a container file extension to its SourceKind
func kindForExt(path string) (SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".cbz":
		return SourceZip, true
	case ".rar", ".cbr":
		return SourceRar, true
	case ".7z", ".cb7":
		return SourceSevenZip, true
	case ".pdf":
		return SourcePdf, true
	default:
		return 0, false
	}
}
