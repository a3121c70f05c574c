package main

import (
	"errors"
	"time"

	"github.com/ncruces/zenity"
)

// dialogCooldown is the minimum time between two file dialogs
const dialogCooldown = 500 * time.Millisecond

// FilePicker shows a modal file chooser. An empty path means the user
// cancelled.
type FilePicker interface {
	PickFile() (string, error)
}

type dialogResult struct {
	Path string
	Err  error
}

// DialogRequester runs at most one file dialog at a time off the UI
// goroutine and hands the chosen path back through Poll
type DialogRequester struct {
	picker   FilePicker
	cooldown time.Duration
	inFlight bool
	last     time.Time
	results  chan dialogResult
	now      func() time.Time
}

// NewDialogRequester creates a DialogRequester using picker
func NewDialogRequester(picker FilePicker) *DialogRequester {
	return &DialogRequester{
		picker:   picker,
		cooldown: dialogCooldown,
		results:  make(chan dialogResult, 1),
		now:      time.Now,
	}
}

// Request opens the dialog unless one is already open or the cooldown has
// not elapsed, in which case it returns ErrDialogBusy
func (d *DialogRequester) Request() error {
	now := d.now()
	if d.inFlight || now.Sub(d.last) < d.cooldown {
		return ErrDialogBusy
	}
	d.inFlight = true
	d.last = now

	go func() {
		path, err := d.picker.PickFile()
		d.results <- dialogResult{Path: path, Err: err}
	}()
	return nil
}

// InFlight reports whether a dialog is open
func (d *DialogRequester) InFlight() bool {
	return d.inFlight
}

// Poll returns the chosen path once the dialog has closed. It never blocks.
func (d *DialogRequester) Poll() (string, bool) {
	select {
	case res := <-d.results:
		d.inFlight = false
		if res.Err != nil {
			logger.Warnf("File dialog failed: %v", res.Err)
			return "", false
		}
		if res.Path == "" {
			debugLog("File dialog cancelled")
			return "", false
		}
		return res.Path, true
	default:
		return "", false
	}
}

// zenityPicker is the native file chooser
type zenityPicker struct{}

func (zenityPicker) PickFile() (string, error) {
	var patterns []string
	for _, ext := range containerExtensions {
		patterns = append(patterns, "*."+ext)
	}
	var imagePatterns []string
	for _, ext := range imageExtensions {
		imagePatterns = append(imagePatterns, "*."+ext)
	}

	path, err := zenity.SelectFile(
		zenity.Title("Open"),
		zenity.FileFilters{
			{Name: "Archives and documents", Patterns: patterns, CaseFold: true},
			{Name: "Images", Patterns: imagePatterns, CaseFold: true},
		},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}
