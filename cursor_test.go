package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorNavigation(t *testing.T) {
	tests := []struct {
		name    string
		mode    ViewMode
		shifted bool
		count   int
		forward []int // indices visited by repeated NextIndex from 0
	}{
		{"single", ViewSingle, false, 4, []int{0, 1, 2, 3}},
		{"double even count", ViewDoubleRightToLeft, false, 6, []int{0, 2, 4}},
		{"double odd count", ViewDoubleLeftToRight, false, 5, []int{0, 2, 4}},
		{"shifted", ViewDoubleRightToLeft, true, 6, []int{0, 1, 3, 5}},
		{"shifted odd count", ViewDoubleRightToLeft, true, 5, []int{0, 1, 3}},
		{"one page", ViewDoubleRightToLeft, false, 1, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PageCursor{Mode: tt.mode, Shifted: tt.shifted, Count: tt.count}

			visited := []int{c.Index}
			for {
				idx, ok := c.NextIndex()
				if !ok {
					assert.Equal(t, c.Index, idx, "index unchanged at the end")
					break
				}
				c.Index = idx
				visited = append(visited, idx)
			}
			assert.Equal(t, tt.forward, visited)
			assert.Equal(t, c.LastIndex(), c.Index, "forward walk ends at LastIndex")

			// Walking back from the last view reaches the first
			for {
				idx, ok := c.PrevIndex()
				if !ok {
					break
				}
				assert.GreaterOrEqual(t, idx, 0)
				c.Index = idx
			}
			assert.Equal(t, 0, c.Index)
		})
	}
}

func TestCursorStepsStayInRange(t *testing.T) {
	for _, mode := range []ViewMode{ViewSingle, ViewDoubleRightToLeft, ViewDoubleLeftToRight} {
		for _, shifted := range []bool{false, true} {
			for count := 1; count <= 7; count++ {
				for start := 0; start < count; start++ {
					c := PageCursor{Mode: mode, Shifted: shifted, Count: count, Index: start}
					if idx, ok := c.NextIndex(); ok {
						assert.Less(t, idx, count)
						assert.Greater(t, idx, start)
					}
					if idx, ok := c.PrevIndex(); ok {
						assert.GreaterOrEqual(t, idx, 0)
						assert.Less(t, idx, start)
					}
				}
			}
		}
	}
}

func TestCursorLastIndex(t *testing.T) {
	tests := []struct {
		name     string
		mode     ViewMode
		shifted  bool
		count    int
		expected int
	}{
		{"empty", ViewDoubleRightToLeft, false, 0, 0},
		{"single", ViewSingle, false, 5, 4},
		{"single even count reaches last page", ViewSingle, false, 6, 5},
		{"double odd count", ViewDoubleRightToLeft, false, 5, 4},
		{"double even count", ViewDoubleRightToLeft, false, 6, 4},
		{"shifted even count", ViewDoubleRightToLeft, true, 6, 5},
		{"shifted odd count", ViewDoubleRightToLeft, true, 5, 3},
		{"shifted one page", ViewDoubleRightToLeft, true, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PageCursor{Mode: tt.mode, Shifted: tt.shifted, Count: tt.count}
			assert.Equal(t, tt.expected, c.LastIndex())
		})
	}
}

func TestCursorToggleShifted(t *testing.T) {
	c := PageCursor{Mode: ViewDoubleRightToLeft, Count: 10, Index: 2}

	c.ToggleShifted()
	assert.True(t, c.Shifted)
	assert.Equal(t, 3, c.Index)

	c.ToggleShifted()
	assert.False(t, c.Shifted)
	assert.Equal(t, 2, c.Index)

	t.Run("cover stays put", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleRightToLeft, Count: 10}
		c.ToggleShifted()
		assert.Equal(t, 0, c.Index)
	})

	t.Run("steps back at the end", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleRightToLeft, Count: 5, Index: 4}
		c.ToggleShifted()
		assert.Equal(t, 3, c.Index)
	})

	t.Run("off from cover pair", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleRightToLeft, Shifted: true, Count: 10, Index: 1}
		c.ToggleShifted()
		assert.Equal(t, 0, c.Index)
	})
}

func TestCursorSpreadAndVisual(t *testing.T) {
	t.Run("right to left puts the later page on the left", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleRightToLeft, Count: 4, Index: 2}
		spread := c.Current()
		assert.Equal(t, Spread{First: 2, Second: 3}, spread)

		left, right := c.Visual(spread)
		assert.Equal(t, 3, left)
		assert.Equal(t, 2, right)
	})

	t.Run("left to right", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleLeftToRight, Count: 4, Index: 2}
		left, right := c.Visual(c.Current())
		assert.Equal(t, 2, left)
		assert.Equal(t, 3, right)
	})

	t.Run("shifted cover shown alone", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleRightToLeft, Shifted: true, Count: 4}
		assert.True(t, c.Current().Single())
	})

	t.Run("trailing odd page shown alone", func(t *testing.T) {
		c := PageCursor{Mode: ViewDoubleRightToLeft, Count: 5, Index: 4}
		spread := c.Current()
		assert.True(t, spread.Single())
		left, right := c.Visual(spread)
		assert.Equal(t, 4, left)
		assert.Equal(t, -1, right)
	})

	t.Run("out of range", func(t *testing.T) {
		c := PageCursor{Mode: ViewSingle, Count: 2}
		assert.Equal(t, Spread{First: -1, Second: -1}, c.SpreadAt(5))
	})
}

func TestCursorAlign(t *testing.T) {
	c := PageCursor{Mode: ViewDoubleRightToLeft, Count: 7}
	assert.Equal(t, 4, c.Align(5))
	assert.Equal(t, 6, c.Align(100))
	assert.Equal(t, 0, c.Align(-3))

	c.Shifted = true
	assert.Equal(t, 3, c.Align(4))
	assert.Equal(t, 0, c.Align(0))

	c.SetMode(ViewSingle)
	c.Index = 5
	c.SetMode(ViewDoubleLeftToRight)
	assert.Equal(t, 5, c.Index, "shifted pairs start on odd pages")
}
