package main

// PageCursor holds the position within a Source and the pagination rules.
// Index is always a valid page index when Count > 0.
type PageCursor struct {
	Mode    ViewMode
	Shifted bool // cover page shown alone, spreads start on odd pages
	Index   int
	Count   int
}

// Spread is the set of pages shown together, in reading order.
// Second is -1 when only one page is shown.
type Spread struct {
	First  int
	Second int
}

// Single reports whether the spread shows one page
func (s Spread) Single() bool {
	return s.Second < 0
}

func (c *PageCursor) nextStep() int {
	if c.Mode == ViewSingle || (c.Shifted && c.Index == 0) {
		return 1
	}
	return 2
}

func (c *PageCursor) prevStep() int {
	if c.Mode == ViewSingle || (c.Shifted && c.Index == 1) {
		return 1
	}
	return 2
}

// NextIndex returns the index the next view starts at. ok is false at the
// end of the source.
func (c *PageCursor) NextIndex() (idx int, ok bool) {
	if next := c.Index + c.nextStep(); next < c.Count {
		return next, true
	}
	return c.Index, false
}

// PrevIndex returns the index the previous view starts at. ok is false at
// the start of the source.
func (c *PageCursor) PrevIndex() (idx int, ok bool) {
	if step := c.prevStep(); c.Index >= step {
		return c.Index - step, true
	}
	return c.Index, false
}

// LastIndex returns the start of the final view: the last page in single
// mode, otherwise the last pair start for the current parity
func (c *PageCursor) LastIndex() int {
	if c.Count == 0 {
		return 0
	}
	last := c.Count - 1
	if !c.Mode.IsDouble() {
		return last
	}
	if c.Shifted {
		if last > 0 && last%2 == 0 {
			return last - 1
		}
		return last
	}
	return last - last%2
}

// Align clamps idx into range and moves it onto a valid view start for the
// current mode
func (c *PageCursor) Align(idx int) int {
	if c.Count == 0 || idx < 0 {
		return 0
	}
	if idx >= c.Count {
		idx = c.Count - 1
	}
	switch {
	case !c.Mode.IsDouble():
		return idx
	case c.Shifted:
		if idx > 0 && idx%2 == 0 {
			idx--
		}
		return idx
	default:
		return idx - idx%2
	}
}

// SetMode switches the pagination mode and realigns the index
func (c *PageCursor) SetMode(mode ViewMode) {
	c.Mode = mode
	c.Index = c.Align(c.Index)
}

// ToggleShifted flips cover mode. Turning it on moves an even index forward
// by one (backward if there is no next page); turning it off steps back and
// rounds down to even.
func (c *PageCursor) ToggleShifted() {
	c.Shifted = !c.Shifted
	if c.Count == 0 {
		c.Index = 0
		return
	}

	if c.Shifted {
		if c.Index != 0 && c.Index%2 == 0 {
			if c.Index+1 < c.Count {
				c.Index++
			} else {
				c.Index--
			}
		}
		return
	}

	if c.Index > 0 {
		c.Index--
	}
	if c.Index%2 != 0 {
		c.Index--
	}
}

// SpreadAt resolves which pages a view starting at idx shows
func (c *PageCursor) SpreadAt(idx int) Spread {
	if idx < 0 || idx >= c.Count {
		return Spread{First: -1, Second: -1}
	}
	if !c.Mode.IsDouble() || (c.Shifted && idx == 0) || idx+1 >= c.Count {
		return Spread{First: idx, Second: -1}
	}
	return Spread{First: idx, Second: idx + 1}
}

// Current resolves the spread at the current index
func (c *PageCursor) Current() Spread {
	return c.SpreadAt(c.Index)
}

// Visual maps a spread onto the left and right halves of the screen.
// Right-to-left reading puts the later page on the left. -1 marks an
// empty half; a single page is reported on the left.
func (c *PageCursor) Visual(s Spread) (left, right int) {
	if s.Single() {
		return s.First, -1
	}
	if c.Mode == ViewDoubleRightToLeft {
		return s.Second, s.First
	}
	return s.First, s.Second
}
