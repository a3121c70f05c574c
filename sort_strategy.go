package main

import (
	"path/filepath"
	"sort"
	"strings"
)

// SortStrategy defines the interface for different sorting strategies
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(names []string) []string
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// naturalLess orders a before b the way a person reads file names.
// Only the last path element is compared first; the full strings break
// ties so that distinct names never compare equal.
func naturalLess(a, b string) bool {
	baseA, baseB := filepath.Base(filepath.ToSlash(a)), filepath.Base(filepath.ToSlash(b))
	if c := compareNatural(baseA, baseB); c != 0 {
		return c < 0
	}
	return compareNatural(a, b) < 0
}

// compareNatural walks both names as a sequence of tokens: single
// non-digit bytes, compared case-insensitively, and whole digit runs,
// compared by value. A digit run sorts against a byte by its first digit.
// Names that still tie are ordered by the width of their digit runs
// ("1" before "01"), then bytewise.
func compareNatural(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	width := 0
	i, j := 0, 0
	for i < len(la) && j < len(lb) {
		ca, cb := la[i], lb[j]
		if isDigit(ca) && isDigit(cb) {
			ei, ej := digitRunEnd(la, i), digitRunEnd(lb, j)
			if c := compareDigitRuns(la[i:ei], lb[j:ej]); c != 0 {
				return c
			}
			if width == 0 {
				width = compareInts(ei-i, ej-j)
			}
			i, j = ei, ej
			continue
		}
		if ca != cb {
			return compareInts(int(ca), int(cb))
		}
		i++
		j++
	}
	if c := compareInts(len(la)-i, len(lb)-j); c != 0 {
		return c
	}
	if width != 0 {
		return width
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitRunEnd(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

// compareDigitRuns compares two digit runs by value without parsing, so
// runs of any length work
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := compareInts(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// NaturalSortStrategy implements natural sorting
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	// Create a copy to avoid modifying the original
	result := make([]string, len(names))
	copy(result, names)

	sort.SliceStable(result, func(i, j int) bool {
		return naturalLess(result[i], result[j])
	})

	return result
}

func (s *NaturalSortStrategy) Name() string {
	return "Natural"
}

func (s *NaturalSortStrategy) ID() int {
	return SortNatural
}

// SimpleSortStrategy implements lexicographical sorting
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	result := make([]string, len(names))
	copy(result, names)

	sort.Strings(result)

	return result
}

func (s *SimpleSortStrategy) Name() string {
	return "Simple"
}

func (s *SimpleSortStrategy) ID() int {
	return SortSimple
}

// EntryOrderSortStrategy preserves the original order
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}

	result := make([]string, len(names))
	copy(result, names)

	return result
}

func (s *EntryOrderSortStrategy) Name() string {
	return "Entry Order"
}

func (s *EntryOrderSortStrategy) ID() int {
	return SortEntryOrder
}

// GetSortStrategy returns the appropriate strategy based on the sort method ID
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{} // Default fallback
	}
}

// naturalSort sorts names in place with the natural ordering
func naturalSort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}
