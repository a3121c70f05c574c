package main

import (
	"context"
	"errors"
	"time"
)

// statusDuration is how long a status message stays on screen
const statusDuration = 2 * time.Second

// StatusEvent is a transient, human-readable message for the user
type StatusEvent struct {
	Message  string
	Time     time.Time
	Duration time.Duration
}

// Active reports whether the event should still be shown at now
func (e StatusEvent) Active(now time.Time) bool {
	return e.Message != "" && now.Sub(e.Time) < e.Duration
}

// NavigateAction is a navigation request from the UI
type NavigateAction int

const (
	NavNext NavigateAction = iota
	NavPrev
	NavFirst
	NavLast
	NavNextSource
	NavPrevSource
	NavNextFolder
	NavPrevFolder
)

var modeMessages = map[ViewMode]string{
	ViewSingle:            "Mode: Single Page",
	ViewDoubleRightToLeft: "Mode: Double Page (Right to Left)",
	ViewDoubleLeftToRight: "Mode: Double Page (Left to Right)",
}

// Viewer owns the open source, the page cursor and every decoded page.
// All methods must be called from a single goroutine; background decoding
// reports back through Update.
type Viewer struct {
	settings Settings
	source   *Source
	cursor   PageCursor

	active            pagePair
	buffers           [2]pagePair // indexed by NavigationDirection
	pending           [2]int      // start index of an in-flight request, or -1
	lastBufferedIndex int
	generation        uint64

	cache      *pageCache
	prefetcher *Prefetcher
	load       pageLoader

	status     []StatusEvent
	lastSwitch time.Time
	now        func() time.Time
}

// NewViewer creates a Viewer. Background prefetching starts when
// settings.AsyncPrefetch is set; call Close to stop it.
func NewViewer(settings Settings) *Viewer {
	return newViewer(settings, loadDecodedPage)
}

func newViewer(settings Settings, load pageLoader) *Viewer {
	v := &Viewer{
		settings:          settings,
		cursor:            PageCursor{Mode: settings.Mode},
		active:            emptyPair(),
		lastBufferedIndex: -1,
		cache:             newPageCache(settings.CacheEnabled),
		load:              load,
		now:               time.Now,
	}
	v.resetBuffers()
	if settings.AsyncPrefetch {
		v.prefetcher = NewPrefetcher(load)
	}
	return v
}

// Close stops background prefetching
func (v *Viewer) Close() {
	if v.prefetcher != nil {
		v.prefetcher.Stop()
	}
}

// Open replaces the current source with path. On failure the previous
// source stays open and a status message is queued.
func (v *Viewer) Open(path string) error {
	return v.open(path, false)
}

func (v *Viewer) open(path string, atEnd bool) error {
	src, start, err := openSource(path, v.settings.SortMethod)
	if err != nil {
		logger.Warnf("Failed to open %s: %v", path, err)
		var openErr *OpenError
		if errors.As(err, &openErr) {
			v.showStatus(openErr.Message())
		}
		return err
	}

	v.source = src
	v.bumpGeneration()
	v.cache.Reset(len(src.Pages), v.settings.MaxCacheSize)

	v.cursor.Count = len(src.Pages)
	if atEnd {
		v.cursor.Index = v.cursor.LastIndex()
	} else {
		v.cursor.Index = v.cursor.Align(start)
	}

	v.resetBuffers()
	v.active = v.loadView(v.cursor.Index)
	v.showStatus(src.Name())
	return nil
}

// Navigate performs a navigation action. Boundaries come back as
// *BoundaryError after a status message was queued.
func (v *Viewer) Navigate(action NavigateAction) error {
	switch action {
	case NavNext:
		return v.Next()
	case NavPrev:
		return v.Prev()
	case NavFirst:
		return v.First()
	case NavLast:
		return v.Last()
	case NavNextSource:
		return v.NextSource()
	case NavPrevSource:
		return v.PrevSource()
	case NavNextFolder:
		return v.NextFolder()
	case NavPrevFolder:
		return v.PrevFolder()
	default:
		return nil
	}
}

// Next moves one view forward, continuing into the next sibling source at
// the end of this one
func (v *Viewer) Next() error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}
	if v.throttled() {
		return nil
	}

	idx, ok := v.cursor.NextIndex()
	if !ok {
		return v.NextSource()
	}
	v.moveTo(idx, NavigationForward)
	return nil
}

// Prev moves one view back, continuing at the end of the previous sibling
// source at the start of this one
func (v *Viewer) Prev() error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}
	if v.throttled() {
		return nil
	}

	idx, ok := v.cursor.PrevIndex()
	if !ok {
		return v.prevSource(true)
	}
	v.moveTo(idx, NavigationBackward)
	return nil
}

// First jumps to the first view
func (v *Viewer) First() error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}
	v.jumpTo(0)
	return nil
}

// Last jumps to the final view
func (v *Viewer) Last() error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}
	v.jumpTo(v.cursor.LastIndex())
	return nil
}

// NextSource opens the next container or folder beside the current source
func (v *Viewer) NextSource() error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}
	next, ok := adjacentSource(v.source.Path, 1)
	if !ok {
		return v.boundary(BoundaryLastFile)
	}
	return v.open(next, false)
}

// PrevSource opens the previous container or folder beside the current
// source
func (v *Viewer) PrevSource() error {
	return v.prevSource(false)
}

func (v *Viewer) prevSource(atEnd bool) error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}
	prev, ok := adjacentSource(v.source.Path, -1)
	if !ok {
		return v.boundary(BoundaryFirstFile)
	}
	return v.open(prev, atEnd)
}

// NextFolder opens the first source in the folder after the current
// source's folder
func (v *Viewer) NextFolder() error {
	return v.stepFolder(1)
}

// PrevFolder opens the first source in the folder before the current
// source's folder
func (v *Viewer) PrevFolder() error {
	return v.stepFolder(-1)
}

func (v *Viewer) stepFolder(delta int) error {
	if v.source == nil {
		return v.boundary(BoundaryNoSource)
	}

	dir, ok := adjacentFolder(sourceFolder(v.source), delta)
	if !ok {
		if delta > 0 {
			return v.boundary(BoundaryLastFolder)
		}
		return v.boundary(BoundaryFirstFolder)
	}

	items := scanFolder(dir)
	if len(items) == 0 {
		// A folder of loose images is a source in its own right
		if images, err := listDirectory(dir); err == nil && len(images) > 0 {
			return v.open(dir, false)
		}
		if delta > 0 {
			return v.boundary(BoundaryEmptyNextFolder)
		}
		return v.boundary(BoundaryEmptyPrevFolder)
	}
	return v.open(items[0], false)
}

// moveTo makes idx the current view. A ready buffer for dir is swapped in
// without decoding; otherwise the view is loaded synchronously.
func (v *Viewer) moveTo(idx int, dir NavigationDirection) {
	buf := &v.buffers[dir]
	if buf.Filled && buf.Start == idx {
		v.buffers[dir.opposite()] = v.active
		v.active = *buf
		*buf = emptyPair()
		debugLog("Swapped buffered view [%d] into place", idx+1)
	} else {
		debugLog("Buffer not ready for [%d], loading synchronously", idx+1)
		v.resetBuffers()
		v.active = v.loadView(idx)
	}
	v.cursor.Index = idx
	v.lastBufferedIndex = -1
}

func (v *Viewer) jumpTo(idx int) {
	if idx == v.cursor.Index {
		return
	}
	v.resetBuffers()
	v.cursor.Index = idx
	v.active = v.loadView(idx)
}

// throttled reports whether a page switch comes too soon after the last
// one under the configured image delay
func (v *Viewer) throttled() bool {
	if v.settings.ImageDelay <= 0 {
		return false
	}
	now := v.now()
	if now.Before(v.lastSwitch.Add(v.settings.ImageDelay)) {
		return true
	}
	v.lastSwitch = now
	return false
}

// Update installs finished background decodes and schedules new ones.
// The UI calls it once per frame.
func (v *Viewer) Update() {
	v.drainPrefetch()
	v.prefetch()
}

// prefetch fills the lookahead and lookbehind buffers for the current
// index. It does nothing when already run for this index.
func (v *Viewer) prefetch() {
	if v.source == nil || v.cursor.Count == 0 {
		return
	}
	idx := v.cursor.Index
	if v.lastBufferedIndex == idx {
		return
	}

	v.prefetchDirection(NavigationForward)
	v.prefetchDirection(NavigationBackward)
	v.lastBufferedIndex = idx
}

func (v *Viewer) targetFor(dir NavigationDirection) (int, bool) {
	if dir == NavigationForward {
		return v.cursor.NextIndex()
	}
	return v.cursor.PrevIndex()
}

func (v *Viewer) prefetchDirection(dir NavigationDirection) {
	target, ok := v.targetFor(dir)
	if !ok {
		return
	}

	buf := &v.buffers[dir]
	if buf.Filled {
		if buf.Start == target {
			return
		}
		*buf = emptyPair()
	}
	if v.pending[dir] == target {
		return
	}

	req := prefetchRequest{
		Generation: v.generation,
		Direction:  dir,
		Source:     v.source,
		Start:      target,
		Options:    v.settings.decodeOptions(),
	}
	for i, id := range v.viewIDs(target) {
		if id == "" {
			continue
		}
		if page, ok := v.cache.Get(id); ok {
			req.Pages[i] = page
			continue
		}
		req.IDs[i] = id
	}

	if req.IDs == [2]string{} {
		*buf = pagePair{Start: target, Pages: req.Pages, Filled: true}
		return
	}
	if v.prefetcher != nil && v.prefetcher.Submit(req) {
		v.pending[dir] = target
		return
	}
	*buf = v.loadView(target)
}

func (v *Viewer) drainPrefetch() {
	if v.prefetcher == nil {
		return
	}
	for {
		select {
		case res := <-v.prefetcher.Results():
			v.installPrefetch(res)
		default:
			return
		}
	}
}

// installPrefetch accepts a background result if it still matches the
// open source, the decode settings and the buffer it was meant for
func (v *Viewer) installPrefetch(res prefetchResult) {
	if res.Generation != v.generation {
		debugLog("Discarding stale prefetch for [%d] (generation %d, current %d)",
			res.Start+1, res.Generation, v.generation)
		v.prefetcher.recordDiscard()
		return
	}

	for i, page := range res.Pages {
		if res.Fresh[i] {
			v.cache.Add(page)
		}
	}
	if v.pending[res.Direction] == res.Start {
		v.pending[res.Direction] = -1
	}

	target, ok := v.targetFor(res.Direction)
	buf := &v.buffers[res.Direction]
	if !ok || target != res.Start || buf.Filled {
		v.prefetcher.recordDiscard()
		return
	}
	*buf = pagePair{Start: res.Start, Pages: res.Pages, Filled: true}
	debugLog("Prefetched view [%d] (cache: %d items)", res.Start+1, v.cache.Len())
}

// viewIDs returns the page ids of the view starting at start in reading
// order; unused slots are empty
func (v *Viewer) viewIDs(start int) [2]string {
	var ids [2]string
	spread := v.cursor.SpreadAt(start)
	if spread.First >= 0 {
		ids[0] = v.source.Pages[spread.First]
	}
	if spread.Second >= 0 {
		ids[1] = v.source.Pages[spread.Second]
	}
	return ids
}

// loadView resolves the view starting at start from the cache, decoding
// misses synchronously
func (v *Viewer) loadView(start int) pagePair {
	pair := pagePair{Start: start, Filled: true}

	var missing [2]string
	for i, id := range v.viewIDs(start) {
		if id == "" {
			continue
		}
		if page, ok := v.cache.Get(id); ok {
			pair.Pages[i] = page
			continue
		}
		missing[i] = id
	}
	if missing == [2]string{} {
		return pair
	}

	pages, errs := loadPair(context.Background(), v.load, v.source, missing, v.settings.decodeOptions())
	for i, id := range missing {
		if id == "" {
			continue
		}
		if errs[i] != nil {
			logger.Warnf("Failed to load page [%d/%d] %s: %v", start+i+1, len(v.source.Pages), id, errs[i])
			continue
		}
		pair.Pages[i] = pages[i]
		v.cache.Add(pages[i])
	}
	return pair
}

func (v *Viewer) resetBuffers() {
	v.buffers = [2]pagePair{emptyPair(), emptyPair()}
	v.pending = [2]int{-1, -1}
	v.lastBufferedIndex = -1
}

func (v *Viewer) bumpGeneration() {
	v.generation++
	if v.prefetcher != nil {
		v.prefetcher.SetGeneration(v.generation)
	}
}

// reloadView drops everything buffered and reloads the current view.
// In-flight decodes are invalidated since the layout they were requested
// for may no longer apply.
func (v *Viewer) reloadView() {
	v.bumpGeneration()
	v.resetBuffers()
	if v.source != nil {
		v.active = v.loadView(v.cursor.Index)
	}
}

// invalidateDecoded discards every decoded page after a change that alters
// pixels
func (v *Viewer) invalidateDecoded() {
	v.cache.Purge()
	v.reloadView()
}

// Settings returns the settings currently in effect
func (v *Viewer) Settings() Settings {
	return v.settings
}

// SetPaginationMode switches between single and double page layouts
func (v *Viewer) SetPaginationMode(mode ViewMode) {
	if mode == v.settings.Mode {
		return
	}
	v.settings.Mode = mode
	v.cursor.SetMode(mode)
	v.reloadView()
	v.showStatus(modeMessages[mode])
}

// ToggleShifted switches cover mode on or off
func (v *Viewer) ToggleShifted() {
	v.cursor.ToggleShifted()
	v.reloadView()
	if v.cursor.Shifted {
		v.showStatus("Mode: Cover + Spreads")
	} else {
		v.showStatus("Mode: Standard Pairs")
	}
}

// Shifted reports whether cover mode is on
func (v *Viewer) Shifted() bool {
	return v.cursor.Shifted
}

// SetResizeQuality changes the scaling filter
func (v *Viewer) SetResizeQuality(q ResizeQuality) {
	if q == v.settings.Resize {
		return
	}
	v.settings.Resize = q
	v.invalidateDecoded()
}

// SetTransparency switches between RGB and RGBA pages
func (v *Viewer) SetTransparency(enabled bool) {
	if enabled == v.settings.Transparency {
		return
	}
	v.settings.Transparency = enabled
	v.invalidateDecoded()
}

// SetCaching turns the whole-source page cache on or off
func (v *Viewer) SetCaching(enabled bool) {
	v.settings.CacheEnabled = enabled
	v.cache.SetEnabled(enabled)
}

// SetViewportHeight sets the target height for scaling and PDF rendering.
// Pages already decoded keep their size.
func (v *Viewer) SetViewportHeight(h float32) {
	v.settings.ViewportHeight = h
}

// CurrentPages returns the decoded pages for the left and right halves of
// the screen. A single-page view is returned as left.
func (v *Viewer) CurrentPages() (left, right *DecodedPage) {
	if v.source == nil {
		return nil, nil
	}
	spread := v.cursor.Current()
	slot := func(idx int) *DecodedPage {
		switch {
		case idx < 0:
			return nil
		case idx == spread.First:
			return v.active.Pages[0]
		case idx == spread.Second:
			return v.active.Pages[1]
		}
		return nil
	}
	l, r := v.cursor.Visual(spread)
	return slot(l), slot(r)
}

// View returns the page ids for the left and right halves of the screen
func (v *Viewer) View() (left, right string) {
	if v.source == nil {
		return "", ""
	}
	l, r := v.cursor.Visual(v.cursor.Current())
	if l >= 0 {
		left = v.source.Pages[l]
	}
	if r >= 0 {
		right = v.source.Pages[r]
	}
	return left, right
}

// IsSingleView reports whether the current view shows one page
func (v *Viewer) IsSingleView() bool {
	return v.cursor.Current().Single()
}

// Source returns the open source, or nil
func (v *Viewer) Source() *Source {
	return v.source
}

// PageIDs returns a copy of the page ids of the open source
func (v *Viewer) PageIDs() []string {
	if v.source == nil {
		return nil
	}
	ids := make([]string, len(v.source.Pages))
	copy(ids, v.source.Pages)
	return ids
}

// PageCount returns the number of pages in the open source
func (v *Viewer) PageCount() int {
	return v.cursor.Count
}

// CurrentIndex returns the 0-based index of the current view
func (v *Viewer) CurrentIndex() int {
	return v.cursor.Index
}

// DisplayIndex returns the 1-based page number shown to the user
func (v *Viewer) DisplayIndex() int {
	if v.cursor.Count == 0 {
		return 0
	}
	return v.cursor.Index + 1
}

// PrefetchStats returns background prefetch statistics
func (v *Viewer) PrefetchStats() PrefetchStats {
	if v.prefetcher == nil {
		return PrefetchStats{}
	}
	return v.prefetcher.GetStats()
}

// PopStatus returns the oldest queued status event
func (v *Viewer) PopStatus() (StatusEvent, bool) {
	if len(v.status) == 0 {
		return StatusEvent{}, false
	}
	ev := v.status[0]
	v.status = v.status[1:]
	return ev, true
}

func (v *Viewer) showStatus(msg string) {
	v.status = append(v.status, StatusEvent{Message: msg, Time: v.now(), Duration: statusDuration})
}

func (v *Viewer) boundary(kind BoundaryKind) error {
	err := &BoundaryError{Kind: kind}
	debugLog("Navigation boundary: %s", err)
	v.showStatus(err.Error())
	return err
}
