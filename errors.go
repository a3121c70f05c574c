package main

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImages is returned when a container lists no supported images
	ErrNoImages = errors.New("no images found")
	// ErrUnsupportedFormat is returned for paths that are neither a
	// supported container nor an image file
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrEntryNotFound is returned when a page id is absent from its container
	ErrEntryNotFound = errors.New("entry not found")
	// ErrDialogBusy is returned when a file dialog is already open or the
	// re-open cooldown has not elapsed. Callers ignore it.
	ErrDialogBusy = errors.New("dialog busy")
)

// OpenError reports a failure to open a path as a Source.
// The previously open Source stays active.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Message returns the text shown to the user for this failure
func (e *OpenError) Message() string {
	if errors.Is(e.Err, ErrNoImages) {
		return "No images found in selection."
	}
	return "Could not open file."
}

// ReadError reports a failure to read or decode a single page.
// It only ever empties the slot the page was meant for.
type ReadError struct {
	Path string
	Page string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s from %s: %v", e.Page, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// BoundaryKind identifies which edge navigation ran into
type BoundaryKind int

const (
	BoundaryLastFile BoundaryKind = iota
	BoundaryFirstFile
	BoundaryLastFolder
	BoundaryFirstFolder
	BoundaryEmptyNextFolder
	BoundaryEmptyPrevFolder
	BoundaryNoSource
)

var boundaryMessages = map[BoundaryKind]string{
	BoundaryLastFile:        "No more files in folder.",
	BoundaryFirstFile:       "No previous files in folder.",
	BoundaryLastFolder:      "No next folder found.",
	BoundaryFirstFolder:     "No previous folder found.",
	BoundaryEmptyNextFolder: "No archive found in next folder.",
	BoundaryEmptyPrevFolder: "No archive found in previous folder.",
	BoundaryNoSource:        "Nothing is open.",
}

// BoundaryError signals that navigation hit the end of a page list,
// file list or folder list. The view state is left unchanged.
type BoundaryError struct {
	Kind BoundaryKind
}

func (e *BoundaryError) Error() string {
	return boundaryMessages[e.Kind]
}

// IsBoundary reports whether err is a navigation boundary signal
func IsBoundary(err error) bool {
	var be *BoundaryError
	return errors.As(err, &be)
}
