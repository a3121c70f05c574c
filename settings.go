package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// ViewMode selects how many pages are shown at once and in which reading order
type ViewMode int

const (
	ViewSingle ViewMode = iota
	ViewDoubleRightToLeft
	ViewDoubleLeftToRight
)

var viewModeNames = map[ViewMode]string{
	ViewSingle:            "single",
	ViewDoubleRightToLeft: "double_rtl",
	ViewDoubleLeftToRight: "double_ltr",
}

func (m ViewMode) String() string {
	if s, ok := viewModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// IsDouble reports whether the mode shows spreads
func (m ViewMode) IsDouble() bool {
	return m == ViewDoubleRightToLeft || m == ViewDoubleLeftToRight
}

func (m ViewMode) MarshalText() ([]byte, error) {
	if _, ok := viewModeNames[m]; !ok {
		return nil, fmt.Errorf("invalid view mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *ViewMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for mode, name := range viewModeNames {
		if name == s {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown view mode %q", s)
}

// ResizeQuality selects the filter used to fit decoded pages to the viewport
type ResizeQuality int

const (
	ResizeNone ResizeQuality = iota
	ResizeNearest
	ResizeBilinear
	ResizeBicubic
	ResizeLanczos3
)

var resizeQualityNames = map[ResizeQuality]string{
	ResizeNone:     "none",
	ResizeNearest:  "nearest",
	ResizeBilinear: "bilinear",
	ResizeBicubic:  "bicubic",
	ResizeLanczos3: "lanczos3",
}

func (q ResizeQuality) String() string {
	if s, ok := resizeQualityNames[q]; ok {
		return s
	}
	return fmt.Sprintf("ResizeQuality(%d)", int(q))
}

// Filter returns the imaging filter for q. ok is false for ResizeNone.
func (q ResizeQuality) Filter() (filter imaging.ResampleFilter, ok bool) {
	switch q {
	case ResizeNearest:
		return imaging.NearestNeighbor, true
	case ResizeBilinear:
		return imaging.Linear, true
	case ResizeBicubic:
		return imaging.CatmullRom, true
	case ResizeLanczos3:
		return imaging.Lanczos, true
	default:
		return imaging.ResampleFilter{}, false
	}
}

func (q ResizeQuality) MarshalText() ([]byte, error) {
	if _, ok := resizeQualityNames[q]; !ok {
		return nil, fmt.Errorf("invalid resize quality %d", int(q))
	}
	return []byte(q.String()), nil
}

func (q *ResizeQuality) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for quality, name := range resizeQualityNames {
		if name == s {
			*q = quality
			return nil
		}
	}
	return fmt.Errorf("unknown resize quality %q", s)
}

// Settings is everything the viewer core needs from the outside world.
// It is passed in explicitly so the core never reads ambient state.
type Settings struct {
	Mode           ViewMode
	Resize         ResizeQuality
	Transparency   bool
	CacheEnabled   bool
	MaxCacheSize   int // 0 means one entry per page
	SortMethod     int
	AsyncPrefetch  bool
	ImageDelay     time.Duration
	ViewportHeight float32
}

// DefaultSettings mirrors the defaults of a fresh config file
func DefaultSettings() Settings {
	return Settings{
		Mode:          ViewDoubleRightToLeft,
		Resize:        ResizeBilinear,
		Transparency:  false,
		CacheEnabled:  true,
		SortMethod:    SortNatural,
		AsyncPrefetch: true,
	}
}

// decodeOptions are the subset of settings that affect decoded pixels.
// A resize or transparency change invalidates every decoded page; a new
// viewport height only applies to pages decoded after it.
type decodeOptions struct {
	Resize         ResizeQuality
	Transparency   bool
	ViewportHeight float32
}

func (s Settings) decodeOptions() decodeOptions {
	return decodeOptions{
		Resize:         s.Resize,
		Transparency:   s.Transparency,
		ViewportHeight: s.ViewportHeight,
	}
}
