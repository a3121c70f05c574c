package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitResult(t *testing.T, p *Prefetcher) prefetchResult {
	t.Helper()
	select {
	case res := <-p.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for prefetch result")
		return prefetchResult{}
	}
}

func TestPrefetcherLoadsMissingSlots(t *testing.T) {
	loader := newCountingLoader("bad.png")
	p := NewPrefetcher(loader.load)
	defer p.Stop()
	p.SetGeneration(3)

	cached := testPage("cached.png")
	require.True(t, p.Submit(prefetchRequest{
		Generation: 3,
		Direction:  NavigationBackward,
		Source:     &Source{},
		Start:      4,
		IDs:        [2]string{"", "new.png"},
		Pages:      [2]*DecodedPage{cached},
	}))

	res := waitResult(t, p)
	assert.Equal(t, uint64(3), res.Generation)
	assert.Equal(t, NavigationBackward, res.Direction)
	assert.Equal(t, 4, res.Start)
	assert.Same(t, cached, res.Pages[0])
	assert.False(t, res.Fresh[0])
	assert.Equal(t, "new.png", res.Pages[1].ID)
	assert.True(t, res.Fresh[1])
	assert.Equal(t, 0, loader.count("cached.png"))

	require.True(t, p.Submit(prefetchRequest{Generation: 3, Source: &Source{}, IDs: [2]string{"bad.png", "ok.png"}}))
	res = waitResult(t, p)
	assert.Nil(t, res.Pages[0])
	assert.NotNil(t, res.Pages[1])

	stats := p.GetStats()
	assert.Equal(t, 2, stats.Requested)
	assert.Equal(t, 2, stats.Loaded)
	assert.Equal(t, 1, stats.Failed)
}

func TestPrefetcherSkipsStaleGeneration(t *testing.T) {
	loader := newCountingLoader()
	p := NewPrefetcher(loader.load)
	defer p.Stop()
	p.SetGeneration(2)

	require.True(t, p.Submit(prefetchRequest{Generation: 1, Source: &Source{}, IDs: [2]string{"old.png"}}))
	require.True(t, p.Submit(prefetchRequest{Generation: 2, Source: &Source{}, IDs: [2]string{"new.png"}}))

	res := waitResult(t, p)
	assert.Equal(t, uint64(2), res.Generation)
	assert.Equal(t, 0, loader.count("old.png"))
	assert.Equal(t, 1, p.GetStats().Skipped)
}

func TestLoadPairEmptyIDs(t *testing.T) {
	calls := 0
	load := func(*Source, string, decodeOptions) (*DecodedPage, error) {
		calls++
		return nil, errors.New("unexpected")
	}

	pages, errs := loadPair(context.Background(), load, &Source{}, [2]string{}, decodeOptions{})
	assert.Equal(t, 0, calls)
	assert.Equal(t, [2]*DecodedPage{}, pages)
	assert.Equal(t, [2]error{}, errs)
}
