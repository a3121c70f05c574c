package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPage(id string) *DecodedPage {
	return &DecodedPage{ID: id, Width: 1, Height: 1, Pix: []uint8{0, 0, 0}}
}

func TestPageCache(t *testing.T) {
	c := newPageCache(true)
	c.Reset(3, 0)

	for _, id := range []string{"a", "b", "c"} {
		c.Add(testPage(id))
	}
	assert.Equal(t, 3, c.Len(), "sized to the page count")

	page, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "b", page.ID)

	c.Add(nil)
	assert.Equal(t, 3, c.Len())

	c.Reset(10, 2)
	assert.Equal(t, 0, c.Len(), "reset drops everything")
	for _, id := range []string{"a", "b", "c"} {
		c.Add(testPage(id))
	}
	assert.Equal(t, 2, c.Len(), "capped by max entries")
	_, ok = c.Get("a")
	assert.False(t, ok, "least recently used is evicted")

	c.SetEnabled(false)
	assert.Equal(t, 0, c.Len())
	c.Add(testPage("d"))
	_, ok = c.Get("d")
	assert.False(t, ok)
}
