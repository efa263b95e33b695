// Package selection implements the multi-range selection model of the grid.
//
// A Selection is an immutable ordered list of ranges in view space. Every
// operation returns a new Selection and never mutates the receiver's backing
// array, so a Selection value can be shared freely between grid states.
package selection

import (
	"iter"
	"slices"

	"github.com/devel0/wscanvas/cell"
)

// Mode selects how ContainsCell tests membership.
type Mode uint8

const (
	// ModeCell tests rectangular containment.
	ModeCell Mode = iota
	// ModeRow tests only the row index and ignores the column.
	ModeRow
)

// Selection is an ordered list of ranges. The zero value is "no selection".
type Selection struct {
	ranges []cell.Range
}

// New returns a selection holding a copy of ranges.
func New(ranges ...cell.Range) Selection {
	if len(ranges) == 0 {
		return Selection{}
	}
	return Selection{ranges: slices.Clone(ranges)}
}

func (s Selection) Len() int    { return len(s.ranges) }
func (s Selection) Empty() bool { return len(s.ranges) == 0 }

// Ranges returns a copy of the ranges in insertion order.
func (s Selection) Ranges() []cell.Range { return slices.Clone(s.ranges) }

// Last returns the most recently added range.
func (s Selection) Last() (cell.Range, bool) {
	if len(s.ranges) == 0 {
		return cell.Range{}, false
	}
	return s.ranges[len(s.ranges)-1], true
}

// Add appends a single-cell range at c.
func (s Selection) Add(c cell.Coord) Selection {
	return s.AddRange(cell.Single(c))
}

// AddRange appends r.
func (s Selection) AddRange(r cell.Range) Selection {
	// Clip forces append to allocate, leaving the receiver untouched.
	return Selection{ranges: append(slices.Clip(s.ranges), r)}
}

// ExtendTo replaces the To corner of the last range and keeps its anchor.
// On an empty selection it behaves like Add.
func (s Selection) ExtendTo(c cell.Coord) Selection {
	if len(s.ranges) == 0 {
		return s.Add(c)
	}
	next := slices.Clone(s.ranges)
	next[len(next)-1].To = c
	return Selection{ranges: next}
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection { return Selection{} }

// ContainsCell reports whether any range covers c.
func (s Selection) ContainsCell(c cell.Coord, mode Mode) bool {
	for _, r := range s.ranges {
		b := r.Bounds()
		switch mode {
		case ModeRow:
			if b.ContainsRow(c.Row) {
				return true
			}
		default:
			if b.Contains(c) {
				return true
			}
		}
	}
	return false
}

// Bounds returns the union of all range bounds. ok is false when empty.
func (s Selection) Bounds() (b cell.Bounds, ok bool) {
	for i, r := range s.ranges {
		if i == 0 {
			b = r.Bounds()
			continue
		}
		b = b.Union(r.Bounds())
	}
	return b, len(s.ranges) > 0
}

// Cells enumerates every covered coordinate: ranges in list order, each
// row-major. Overlapping ranges yield repeated cells. The sequence is
// finite and may be iterated any number of times.
func (s Selection) Cells() iter.Seq[cell.Coord] {
	ranges := s.ranges
	return func(yield func(cell.Coord) bool) {
		for _, r := range ranges {
			b := r.Bounds()
			for row := b.MinRow; row <= b.MaxRow; row++ {
				for col := b.MinCol; col <= b.MaxCol; col++ {
					if !yield(cell.At(row, col)) {
						return
					}
				}
			}
		}
	}
}

// Count is the total number of cells Cells yields.
func (s Selection) Count() int {
	n := 0
	for _, r := range s.ranges {
		n += r.Bounds().Size()
	}
	return n
}

// RowIdxs returns the sorted distinct rows touched by any range.
func (s Selection) RowIdxs() []int {
	return expandSpans(s.spans(func(b cell.Bounds) span { return span{b.MinRow, b.MaxRow} }))
}

// ColIdxs returns the sorted distinct columns touched by any range.
func (s Selection) ColIdxs() []int {
	return expandSpans(s.spans(func(b cell.Bounds) span { return span{b.MinCol, b.MaxCol} }))
}

// IsFullWorksheet reports whether the selection bounds are exactly
// [0,0]..[rows-1, cols-1].
func (s Selection) IsFullWorksheet(rows, cols int) bool {
	b, ok := s.Bounds()
	if !ok || rows <= 0 || cols <= 0 {
		return false
	}
	return b == cell.Bounds{MinRow: 0, MinCol: 0, MaxRow: rows - 1, MaxCol: cols - 1}
}

// Translate returns a selection whose corners have been passed through fn.
// It is used to translate between view and real space.
func (s Selection) Translate(fn func(cell.Coord) cell.Coord) Selection {
	if len(s.ranges) == 0 {
		return Selection{}
	}
	out := make([]cell.Range, len(s.ranges))
	for i, r := range s.ranges {
		out[i] = cell.Range{From: fn(r.From), To: fn(r.To)}
	}
	return Selection{ranges: out}
}

// Clamp clamps every corner into a rows x cols grid. An empty grid clears
// the selection.
func (s Selection) Clamp(rows, cols int) Selection {
	if rows <= 0 || cols <= 0 {
		return Selection{}
	}
	changed := false
	for _, r := range s.ranges {
		if cell.ClampRange(r, rows, cols) != r {
			changed = true
			break
		}
	}
	if !changed {
		return s
	}
	return s.Translate(func(c cell.Coord) cell.Coord { return cell.Clamp(c, rows, cols) })
}

// Equal reports whether both selections hold the same ranges in order.
func (s Selection) Equal(o Selection) bool {
	return slices.Equal(s.ranges, o.ranges)
}

type span struct{ lo, hi int }

func (s Selection) spans(pick func(cell.Bounds) span) []span {
	out := make([]span, 0, len(s.ranges))
	for _, r := range s.ranges {
		out = append(out, pick(r.Bounds()))
	}
	return out
}

func expandSpans(spans []span) []int {
	if len(spans) == 0 {
		return nil
	}
	slices.SortFunc(spans, func(a, b span) int { return a.lo - b.lo })

	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.lo <= last.hi+1 {
			last.hi = max(last.hi, sp.hi)
			continue
		}
		merged = append(merged, sp)
	}

	n := 0
	for _, sp := range merged {
		n += sp.hi - sp.lo + 1
	}
	out := make([]int, 0, n)
	for _, sp := range merged {
		for i := sp.lo; i <= sp.hi; i++ {
			out = append(out, i)
		}
	}
	return out
}

// SetRanges returns a selection holding a copy of ranges.
func (s Selection) SetRanges(ranges []cell.Range) Selection {
	return New(ranges...)
}
