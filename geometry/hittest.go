package geometry

import (
	"math"

	"github.com/devel0/wscanvas/cell"
)

func spanAt(spans []Span, p, sep int) (Span, bool) {
	for _, s := range spans {
		end := s.End()
		if !s.Partial {
			end += sep
		}
		if p >= s.Pos && p < end {
			return s, true
		}
	}
	return Span{}, false
}

func spanOf(spans []Span, idx int) (Span, bool) {
	for _, s := range spans {
		if s.Index == idx {
			return s, true
		}
	}
	return Span{}, false
}

// RowSpan returns the span of view row v when it is on screen.
func (f Frame) RowSpan(v int) (Span, bool) { return spanOf(f.Rows, v) }

// ColSpan returns the span of column c when it is on screen.
func (f Frame) ColSpan(c int) (Span, bool) { return spanOf(f.Cols, c) }

// CellAt maps a screen position to a cell.
//
// Rules:
//   - the header band maps to Row == cell.Gutter, the filter band to
//     Row == cell.Gutter with FilterRow set
//   - the row-number gutter maps to Col == cell.Gutter
//   - separators belong to the row or column before them
//   - scrollbars and empty space past the last row or column miss
func (f Frame) CellAt(x, y int) (cell.Coord, bool) {
	l := f.Layout
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return cell.Coord{}, false
	}
	if f.VBar.Visible && f.VBar.Track.Contains(x, y) {
		return cell.Coord{}, false
	}
	if f.HBar.Visible && f.HBar.Track.Contains(x, y) {
		return cell.Coord{}, false
	}

	var c cell.Coord
	switch {
	case y < l.HeaderHeight:
		c.Row = cell.Gutter
	case y < l.HeaderHeight+l.FilterHeight:
		c.Row = cell.Gutter
		c.FilterRow = true
	default:
		s, ok := spanAt(f.Rows, y, l.RowSeparator)
		if !ok {
			return cell.Coord{}, false
		}
		c.Row = s.Index
	}

	if x < l.GutterWidth {
		c.Col = cell.Gutter
		return c, true
	}
	s, ok := spanAt(f.Cols, x, l.ColSeparator)
	if !ok {
		return cell.Coord{}, false
	}
	c.Col = s.Index
	return c, true
}

// CellRect returns the screen rectangle of c. ok is false when c is not on
// screen.
func (f Frame) CellRect(c cell.Coord) (Rect, bool) {
	l := f.Layout
	var r Rect
	switch {
	case c.Row == cell.Gutter && c.FilterRow:
		r.Y, r.H = l.HeaderHeight, l.FilterHeight
	case c.Row == cell.Gutter:
		r.Y, r.H = 0, l.HeaderHeight
	default:
		s, ok := f.RowSpan(c.Row)
		if !ok {
			return Rect{}, false
		}
		r.Y, r.H = s.Pos, s.Size
	}
	if c.Col == cell.Gutter {
		r.X, r.W = 0, l.GutterWidth
	} else {
		s, ok := f.ColSpan(c.Col)
		if !ok {
			return Rect{}, false
		}
		r.X, r.W = s.Pos, s.Size
	}
	if r.Empty() {
		return Rect{}, false
	}
	return r, true
}

// ResizeHandleAt reports the column whose right edge is within tol cells of
// x, when y is in the header band.
func (f Frame) ResizeHandleAt(x, y, tol int) (col int, ok bool) {
	if y < 0 || y >= f.Layout.HeaderHeight {
		return 0, false
	}
	best := tol + 1
	for _, s := range f.Cols {
		if s.Partial {
			continue
		}
		d := x - (s.End() - 1)
		if d < 0 {
			d = -d
		}
		if d <= tol && d < best {
			best, col, ok = d, s.Index, true
		}
	}
	return col, ok
}

// VScrollFactor converts a pointer y on the vertical bar into a factor in
// [0, 1]. grab is the pointer offset inside the handle when the drag
// started.
func (f Frame) VScrollFactor(y, grab int) float64 {
	b := f.VBar
	return factor(y-grab-b.Track.Y, b.Track.H-b.Handle.H)
}

// HScrollFactor is VScrollFactor for the horizontal bar.
func (f Frame) HScrollFactor(x, grab int) float64 {
	b := f.HBar
	return factor(x-grab-b.Track.X, b.Track.W-b.Handle.W)
}

func factor(pos, free int) float64 {
	if free <= 0 {
		return 0
	}
	v := float64(pos) / float64(free)
	return math.Min(math.Max(v, 0), 1)
}

// ScrollForFactor converts a factor to a scroll offset on axis.
func (f Frame) ScrollForFactor(axis Axis, v float64) int {
	limit := f.MaxScroll.Row
	if axis == Horizontal {
		limit = f.MaxScroll.Col
	}
	v = math.Min(math.Max(v, 0), 1)
	return int(math.Round(v * float64(limit)))
}

// ClampScroll clamps o into [0, MaxScroll].
func (f Frame) ClampScroll(o Offset) Offset {
	o.Row = min(max(o.Row, 0), f.MaxScroll.Row)
	o.Col = min(max(o.Col, 0), f.MaxScroll.Col)
	return o
}

// FirstRow returns the first scrollable view row on screen.
func (f Frame) FirstRow() int { return f.Layout.FrozenRows + f.Scroll.Row }

// FirstCol returns the first scrollable column on screen.
func (f Frame) FirstCol() int { return f.Layout.FrozenCols + f.Scroll.Col }

// RowFullyVisible reports whether view row v is on screen and not clipped.
func (f Frame) RowFullyVisible(v int) bool {
	s, ok := f.RowSpan(v)
	return ok && !s.Partial
}

// ColFullyVisible reports whether column c is on screen and not clipped.
func (f Frame) ColFullyVisible(c int) bool {
	s, ok := f.ColSpan(c)
	return ok && !s.Partial
}

// Reveal returns the smallest scroll change that brings the data cell c
// fully on screen. Frozen rows and columns never scroll.
func (f Frame) Reveal(c cell.Coord) Offset {
	l := f.Layout
	o := f.Scroll
	if c.Row >= l.FrozenRows && c.Row < l.Rows {
		o.Row = reveal(c.Row, l.FrozenRows, o.Row, f.restH(), l.RowSeparator, l.RowSize)
	}
	if c.Col >= l.FrozenCols && c.Col < l.Cols {
		o.Col = reveal(c.Col, l.FrozenCols, o.Col, f.restW(), l.ColSeparator, l.ColSize)
	}
	return f.ClampScroll(o)
}

func reveal(idx, frozen, scroll, rest, sep int, size func(int) int) int {
	first := frozen + scroll
	if idx < first {
		return idx - frozen
	}
	used := 0
	top := idx
	for i := idx; i >= first; i-- {
		p := size(i) + sep
		if used+p > rest {
			break
		}
		used += p
		top = i
	}
	if used == 0 {
		return idx - frozen
	}
	return top - frozen
}

func (f Frame) restH() int {
	l := f.Layout
	h := f.Content.H
	for i := range l.FrozenRows {
		h -= l.RowSize(i) + l.RowSeparator
	}
	return max(h, 0)
}

func (f Frame) restW() int {
	l := f.Layout
	w := f.Content.W
	for i := range l.FrozenCols {
		w -= l.ColSize(i) + l.ColSeparator
	}
	return max(w, 0)
}
