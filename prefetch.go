package main

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
)

func (d NavigationDirection) opposite() NavigationDirection {
	if d == NavigationForward {
		return NavigationBackward
	}
	return NavigationForward
}

// pagePair holds the decoded pages of one view in reading order.
// Filled is set once both slots were attempted; a slot may still be nil.
type pagePair struct {
	Start  int
	Pages  [2]*DecodedPage
	Filled bool
}

func emptyPair() pagePair {
	return pagePair{Start: -1}
}

// prefetchRequest asks the worker to decode the missing pages of one view.
// Slots with an empty id are already resolved in Pages.
type prefetchRequest struct {
	Generation uint64
	Direction  NavigationDirection
	Source     *Source
	Start      int
	IDs        [2]string
	Pages      [2]*DecodedPage
	Options    decodeOptions
}

// prefetchResult carries a decoded view back to the owning goroutine.
// Fresh marks slots decoded by the worker rather than taken from the cache.
type prefetchResult struct {
	Generation uint64
	Direction  NavigationDirection
	Start      int
	Pages      [2]*DecodedPage
	Fresh      [2]bool
}

// PrefetchStats provides statistics about prefetching
type PrefetchStats struct {
	Requested int
	Loaded    int
	Failed    int
	Skipped   int
	Discarded int
}

// Prefetcher decodes lookahead and lookbehind views on a background
// goroutine. It never touches viewer state: results go back over a channel
// and the viewer decides whether they are still wanted.
type Prefetcher struct {
	requests   chan prefetchRequest
	results    chan prefetchResult
	ctx        context.Context
	cancel     context.CancelFunc
	load       pageLoader
	generation atomic.Uint64
	mu         sync.Mutex
	stats      PrefetchStats
}

// NewPrefetcher creates a Prefetcher and starts its worker
func NewPrefetcher(load pageLoader) *Prefetcher {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Prefetcher{
		requests: make(chan prefetchRequest, 8),
		results:  make(chan prefetchResult, 8),
		ctx:      ctx,
		cancel:   cancel,
		load:     load,
	}

	go p.worker()

	return p
}

// SetGeneration marks every request from an older generation as stale
func (p *Prefetcher) SetGeneration(gen uint64) {
	p.generation.Store(gen)
}

// Submit queues a request without blocking. It returns false when the
// queue is full.
func (p *Prefetcher) Submit(req prefetchRequest) bool {
	select {
	case p.requests <- req:
		p.mu.Lock()
		p.stats.Requested++
		p.mu.Unlock()
		return true
	default:
		debugLog("Prefetch request channel full, skipping request for index %d", req.Start)
		return false
	}
}

// Results is polled by the owner; receives must not block
func (p *Prefetcher) Results() <-chan prefetchResult {
	return p.results
}

// GetStats returns current prefetch statistics
func (p *Prefetcher) GetStats() PrefetchStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Prefetcher) recordDiscard() {
	p.mu.Lock()
	p.stats.Discarded++
	p.mu.Unlock()
}

// Stop stops the worker. Results still in flight are dropped.
func (p *Prefetcher) Stop() {
	p.cancel()
}

func (p *Prefetcher) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case req := <-p.requests:
			p.process(req)
		}
	}
}

func (p *Prefetcher) process(req prefetchRequest) {
	if req.Generation != p.generation.Load() {
		p.mu.Lock()
		p.stats.Skipped++
		p.mu.Unlock()
		return
	}

	pages, errs := loadPair(p.ctx, p.load, req.Source, req.IDs, req.Options)

	res := prefetchResult{
		Generation: req.Generation,
		Direction:  req.Direction,
		Start:      req.Start,
		Pages:      req.Pages,
	}
	p.mu.Lock()
	for i, id := range req.IDs {
		if id == "" {
			continue
		}
		if errs[i] != nil {
			p.stats.Failed++
			debugLog("Prefetch failed for [%d] %s: %v", req.Start+i+1, id, errs[i])
			continue
		}
		p.stats.Loaded++
		res.Pages[i] = pages[i]
		res.Fresh[i] = true
	}
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
	case p.results <- res:
	}
}

// loadPair decodes up to two pages concurrently. A failure in one slot
// leaves that slot nil and never affects the other.
func loadPair(ctx context.Context, load pageLoader, src *Source, ids [2]string, opts decodeOptions) (pages [2]*DecodedPage, errs [2]error) {
	g, _ := errgroup.WithContext(ctx)
	for i, id := range ids {
		if id == "" {
			continue
		}
		g.Go(func() error {
			pages[i], errs[i] = load(src, id, opts)
			return nil
		})
	}
	_ = g.Wait()
	return pages, errs
}
