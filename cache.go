package main

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// pageCache keeps decoded pages of the open source keyed by page id.
// It is sized to the page count so nothing is evicted unless a cap is
// configured. Only the goroutine that owns the Viewer touches it.
type pageCache struct {
	cache   *lru.Cache[string, *DecodedPage]
	enabled bool
}

func newPageCache(enabled bool) *pageCache {
	c := &pageCache{enabled: enabled}
	c.Reset(1, 0)
	return c
}

// Reset drops every entry and resizes the cache for a source of pageCount
// pages. maxEntries caps the size when positive.
func (c *pageCache) Reset(pageCount, maxEntries int) {
	size := pageCount
	if maxEntries > 0 && size > maxEntries {
		size = maxEntries
	}
	if size < 1 {
		size = 1
	}

	cache, err := lru.New[string, *DecodedPage](size)
	if err != nil {
		logger.Errorf("Failed to create page cache of size %d: %v", size, err)
		cache, _ = lru.New[string, *DecodedPage](16)
	}
	c.cache = cache
}

func (c *pageCache) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.Purge()
	}
}

func (c *pageCache) Get(id string) (*DecodedPage, bool) {
	if !c.enabled {
		return nil, false
	}
	page, ok := c.cache.Get(id)
	if ok {
		debugLog("Cache HIT: %s (cache: %d items)", id, c.cache.Len())
	}
	return page, ok
}

func (c *pageCache) Add(page *DecodedPage) {
	if !c.enabled || page == nil {
		return
	}
	c.cache.Add(page.ID, page)
}

func (c *pageCache) Purge() {
	c.cache.Purge()
}

func (c *pageCache) Len() int {
	return c.cache.Len()
}
