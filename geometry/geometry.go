// Package geometry computes the visible window of a grid viewport.
//
// All coordinates are terminal cells relative to the top-left corner of the
// grid. The vertical layout from the top is: header band, filter band, data
// rows (frozen first), horizontal scrollbar. The horizontal layout from the
// left is: row-number gutter, data columns (frozen first), vertical
// scrollbar.
//
// Compute only visits rows and columns that can appear on screen, so its cost
// follows the viewport size and not the data size.
package geometry

import (
	"github.com/devel0/wscanvas/viewmap"
)

// ScrollbarMode controls when a scrollbar is shown.
type ScrollbarMode uint8

const (
	// ScrollbarAuto shows the bar when content does not fit.
	ScrollbarAuto ScrollbarMode = iota
	ScrollbarOn
	ScrollbarOff
)

func (m ScrollbarMode) String() string {
	switch m {
	case ScrollbarOn:
		return "on"
	case ScrollbarOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseScrollbarMode maps "auto", "on" and "off".
func ParseScrollbarMode(s string) (ScrollbarMode, bool) {
	switch s {
	case "", "auto":
		return ScrollbarAuto, true
	case "on", "always":
		return ScrollbarOn, true
	case "off", "never":
		return ScrollbarOff, true
	default:
		return ScrollbarAuto, false
	}
}

// Axis selects rows (Vertical) or columns (Horizontal).
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

// Offset is a scroll position in view space. It counts scrollable rows and
// columns past the frozen prefix.
type Offset struct {
	Row int
	Col int
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Layout is the input of Compute.
type Layout struct {
	Width  int
	Height int

	// Rows is the number of view rows (after filtering); Cols the number
	// of columns.
	Rows int
	Cols int

	FrozenRows int
	FrozenCols int

	RowHeight    int
	ColWidth     int
	RowSeparator int
	ColSeparator int

	// RowHeights overrides heights keyed by real row; View maps view rows
	// to real rows for the lookup.
	RowHeights map[int]int
	View       viewmap.ViewMap
	// ColWidths overrides widths keyed by column.
	ColWidths map[int]int

	GutterWidth  int
	HeaderHeight int
	FilterHeight int

	PartialRows bool
	PartialCols bool

	Scroll Offset

	VScroll       ScrollbarMode
	HScroll       ScrollbarMode
	ScrollbarSize int
	MinHandle     int
}

// Span is one visible row or column.
type Span struct {
	// Index is the view row or the column.
	Index int
	// Pos is the screen y (rows) or x (columns) of the first cell.
	Pos int
	// Size is the rendered size, clipped for partial spans.
	Size    int
	Frozen  bool
	Partial bool
}

// End returns the first position after the span.
func (s Span) End() int { return s.Pos + s.Size }

// Scrollbar is the geometry of one scrollbar.
type Scrollbar struct {
	Visible bool
	Track   Rect
	Handle  Rect
}

// Frame is a computed viewport.
type Frame struct {
	Layout Layout

	// Scroll is Layout.Scroll clamped into [0, MaxScroll].
	Scroll    Offset
	MaxScroll Offset

	// Content is the data area, between the header/gutter and scrollbars.
	Content Rect

	Rows []Span
	Cols []Span

	// VisibleRows counts fully visible rows (frozen included). PageRows
	// counts only fully visible scrollable rows.
	VisibleRows int
	VisibleCols int
	PageRows    int
	PageCols    int

	// PartialRow reports a trailing row that only partially fits. It is in
	// Rows only when Layout.PartialRows is set.
	PartialRow bool
	PartialCol bool

	VBar Scrollbar
	HBar Scrollbar
}

func normalize(l Layout) Layout {
	l.Width = max(l.Width, 0)
	l.Height = max(l.Height, 0)
	l.Rows = max(l.Rows, 0)
	l.Cols = max(l.Cols, 0)
	l.FrozenRows = min(max(l.FrozenRows, 0), l.Rows)
	l.FrozenCols = min(max(l.FrozenCols, 0), l.Cols)
	l.RowHeight = max(l.RowHeight, 1)
	l.ColWidth = max(l.ColWidth, 1)
	l.RowSeparator = max(l.RowSeparator, 0)
	l.ColSeparator = max(l.ColSeparator, 0)
	l.GutterWidth = max(l.GutterWidth, 0)
	l.HeaderHeight = max(l.HeaderHeight, 0)
	l.FilterHeight = max(l.FilterHeight, 0)
	l.ScrollbarSize = max(l.ScrollbarSize, 0)
	l.MinHandle = max(l.MinHandle, 1)
	return l
}

// RowSize returns the height of view row v.
func (l Layout) RowSize(v int) int {
	if len(l.RowHeights) > 0 {
		if h, ok := l.RowHeights[l.View.ViewToReal(v)]; ok && h > 0 {
			return h
		}
	}
	return max(l.RowHeight, 1)
}

// ColSize returns the width of column c.
func (l Layout) ColSize(c int) int {
	if w, ok := l.ColWidths[c]; ok && w > 0 {
		return w
	}
	return max(l.ColWidth, 1)
}

type axisIn struct {
	count   int
	frozen  int
	scroll  int
	start   int
	avail   int
	sep     int
	partial bool
	size    func(int) int
}

type axisOut struct {
	spans     []Span
	visible   int
	page      int
	partial   bool
	scroll    int
	maxScroll int
	// overflow reports that not every scrollable item fits at once.
	overflow bool
}

func layoutAxis(in axisIn) axisOut {
	var out axisOut
	avail := max(in.avail, 0)

	pos := 0
	for i := range in.frozen {
		if pos >= avail {
			break
		}
		sz := in.size(i)
		s := Span{Index: i, Pos: in.start + pos, Size: min(sz, avail-pos), Frozen: true}
		if pos+sz > avail {
			s.Partial = true
		} else {
			out.visible++
		}
		out.spans = append(out.spans, s)
		pos += sz + in.sep
	}

	rest := max(avail-pos, 0)
	scrollable := in.count - in.frozen

	fromEnd, used := 0, 0
	for i := in.count - 1; i >= in.frozen; i-- {
		p := in.size(i) + in.sep
		if used+p > rest {
			break
		}
		used += p
		fromEnd++
	}
	out.overflow = fromEnd < scrollable
	if scrollable > 0 {
		out.maxScroll = max(0, scrollable-max(fromEnd, 1))
	}
	out.scroll = min(max(in.scroll, 0), out.maxScroll)

	used = 0
	for i := in.frozen + out.scroll; i < in.count; i++ {
		sz := in.size(i)
		p := sz + in.sep
		if used+p <= rest {
			out.spans = append(out.spans, Span{Index: i, Pos: in.start + pos + used, Size: sz})
			used += p
			out.page++
			continue
		}
		if rest-used > 0 {
			out.partial = true
			if in.partial {
				out.spans = append(out.spans, Span{Index: i, Pos: in.start + pos + used, Size: min(sz, rest-used), Partial: true})
			}
		}
		break
	}
	out.visible += out.page
	return out
}

func barOn(mode ScrollbarMode, overflow bool) bool {
	switch mode {
	case ScrollbarOn:
		return true
	case ScrollbarOff:
		return false
	default:
		return overflow
	}
}

// Compute lays out l.
//
// Scrollbar activation shrinks the content area, which can in turn make the
// other bar necessary. Activation only ever turns bars on, so the loop
// settles after at most two changes.
func Compute(l Layout) Frame {
	l = normalize(l)
	f := Frame{Layout: l}

	vOn, hOn := l.VScroll == ScrollbarOn, l.HScroll == ScrollbarOn
	var rows, cols axisOut
	for range 3 {
		f.Content = contentRect(l, vOn, hOn)
		rows = layoutAxis(axisIn{
			count: l.Rows, frozen: l.FrozenRows, scroll: l.Scroll.Row,
			start: f.Content.Y, avail: f.Content.H, sep: l.RowSeparator,
			partial: l.PartialRows, size: l.RowSize,
		})
		cols = layoutAxis(axisIn{
			count: l.Cols, frozen: l.FrozenCols, scroll: l.Scroll.Col,
			start: f.Content.X, avail: f.Content.W, sep: l.ColSeparator,
			partial: l.PartialCols, size: l.ColSize,
		})
		nv, nh := barOn(l.VScroll, rows.overflow), barOn(l.HScroll, cols.overflow)
		if nv == vOn && nh == hOn {
			break
		}
		vOn, hOn = vOn || nv, hOn || nh
	}

	f.Rows, f.Cols = rows.spans, cols.spans
	f.VisibleRows, f.VisibleCols = rows.visible, cols.visible
	f.PageRows, f.PageCols = rows.page, cols.page
	f.PartialRow, f.PartialCol = rows.partial, cols.partial
	f.Scroll = Offset{Row: rows.scroll, Col: cols.scroll}
	f.MaxScroll = Offset{Row: rows.maxScroll, Col: cols.maxScroll}

	if vOn && l.ScrollbarSize > 0 {
		f.VBar = bar(Vertical, Rect{X: f.Content.X + f.Content.W, Y: f.Content.Y, W: l.ScrollbarSize, H: f.Content.H},
			l.Rows-l.FrozenRows, rows.page, rows.scroll, rows.maxScroll, l.MinHandle)
	}
	if hOn && l.ScrollbarSize > 0 {
		f.HBar = bar(Horizontal, Rect{X: f.Content.X, Y: f.Content.Y + f.Content.H, W: f.Content.W, H: l.ScrollbarSize},
			l.Cols-l.FrozenCols, cols.page, cols.scroll, cols.maxScroll, l.MinHandle)
	}
	return f
}

func contentRect(l Layout, vOn, hOn bool) Rect {
	r := Rect{X: l.GutterWidth, Y: l.HeaderHeight + l.FilterHeight}
	r.W = l.Width - r.X
	r.H = l.Height - r.Y
	if vOn {
		r.W -= l.ScrollbarSize
	}
	if hOn {
		r.H -= l.ScrollbarSize
	}
	r.W, r.H = max(r.W, 0), max(r.H, 0)
	return r
}

func bar(axis Axis, track Rect, total, visible, scroll, maxScroll, minHandle int) Scrollbar {
	b := Scrollbar{Visible: !track.Empty(), Track: track}
	if !b.Visible {
		return b
	}
	length := track.H
	if axis == Horizontal {
		length = track.W
	}
	handle := length
	if total > 0 && visible < total {
		handle = length * visible / total
	}
	handle = min(max(handle, minHandle), length)
	pos := 0
	if maxScroll > 0 {
		pos = (length - handle) * scroll / maxScroll
	}
	if axis == Vertical {
		b.Handle = Rect{X: track.X, Y: track.Y + pos, W: track.W, H: handle}
	} else {
		b.Handle = Rect{X: track.X + pos, Y: track.Y, W: handle, H: track.H}
	}
	return b
}
