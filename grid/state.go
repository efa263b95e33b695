package grid

import (
	"maps"
	"slices"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/selection"
	"github.com/devel0/wscanvas/sortfilter"
)

// EditMode is the state of the cell editor.
type EditMode uint8

const (
	EditNone EditMode = iota
	// EditDirect is entered by typing on a focused cell; the typed text
	// replaces the value.
	EditDirect
	// EditExplicit is entered with F2, double click or OpenCustomEdit; the
	// current value is loaded for editing.
	EditExplicit
)

func (m EditMode) String() string {
	switch m {
	case EditDirect:
		return "direct"
	case EditExplicit:
		return "explicit"
	default:
		return "none"
	}
}

// Edit is the pending edit.
type Edit struct {
	Mode EditMode
	// Cell is the edited cell in view space. A filter band cell has
	// FilterRow set.
	Cell cell.Coord
	// Text is the pending text of a built-in edit.
	Text string

	// Custom is set while a host editor owns the edit; Value is then the
	// pending value.
	Custom bool
	Editor host.Editor
	Value  any
}

// Active reports whether an edit is open.
func (e Edit) Active() bool { return e.Mode != EditNone }

type dragKind uint8

const (
	dragNone dragKind = iota
	dragSelect
	dragVScroll
	dragHScroll
	dragResize
)

type drag struct {
	kind       dragKind
	grab       int
	col        int
	startX     int
	startWidth int
}

// State is the grid's interaction state. Transitions produce a new State
// value; slice and map fields are shared between versions and only cloned
// by the transition that changes them.
type State struct {
	Focus     cell.Coord
	Selection selection.Selection

	Filters []sortfilter.Filter
	Sorts   []sortfilter.ColumnSortInfo

	// RowHeights holds height overrides keyed by real row; ColWidths holds
	// width overrides keyed by column.
	RowHeights map[int]int
	ColWidths  map[int]int
	// autoRows marks RowHeights entries computed from wrapped text.
	autoRows map[int]bool

	Scroll      geometry.Offset
	VisibleRows int
	VisibleCols int
	VBar        geometry.Scrollbar
	HBar        geometry.Scrollbar

	Edit Edit

	FilteredCount int
	Initialized   bool
	Version       uint64

	drag drag
}

func (s State) withFilters(f []sortfilter.Filter) State {
	s.Filters = slices.Clip(f)
	return s
}

func (s State) withSorts(sorts []sortfilter.ColumnSortInfo) State {
	s.Sorts = slices.Clip(sorts)
	return s
}

func (s State) withColWidth(col, w int) State {
	next := maps.Clone(s.ColWidths)
	if next == nil {
		next = map[int]int{}
	}
	next[col] = w
	s.ColWidths = next
	return s
}

func (s State) withRowHeight(real, h int) State {
	next := maps.Clone(s.RowHeights)
	if next == nil {
		next = map[int]int{}
	}
	if h > 0 {
		next[real] = h
	} else {
		delete(next, real)
	}
	s.RowHeights = next
	if s.autoRows[real] {
		auto := maps.Clone(s.autoRows)
		delete(auto, real)
		s.autoRows = auto
	}
	return s
}

func (s State) withAutoHeights(heights map[int]int) State {
	rows := maps.Clone(s.RowHeights)
	if rows == nil {
		rows = map[int]int{}
	}
	auto := maps.Clone(s.autoRows)
	if auto == nil {
		auto = map[int]bool{}
	}
	for r, h := range heights {
		rows[r] = h
		auto[r] = true
	}
	s.RowHeights, s.autoRows = rows, auto
	return s
}

func (s State) withoutAutoHeights() State {
	if len(s.autoRows) == 0 {
		return s
	}
	rows := maps.Clone(s.RowHeights)
	for r := range s.autoRows {
		delete(rows, r)
	}
	s.RowHeights, s.autoRows = rows, nil
	return s
}

// withMovedRows re-keys manual row heights after a sort moved host rows.
// moved[i] is the real row that now sits at i.
func (s State) withMovedRows(moved []int) State {
	if len(s.RowHeights) == 0 {
		return s
	}
	next := make(map[int]int, len(s.RowHeights))
	for to, from := range moved {
		if h, ok := s.RowHeights[from]; ok {
			next[to] = h
		}
	}
	s.RowHeights = next
	return s
}

// AutoRow reports whether the height of real row r was computed from
// wrapped text.
func (s State) AutoRow(r int) bool { return s.autoRows[r] }

// dropColumnsFrom removes filters, sorts and width overrides of columns at
// or past n, and the computed row heights.
func (s State) dropColumnsFrom(n int) State {
	s.Filters = slices.DeleteFunc(slices.Clone(s.Filters), func(f sortfilter.Filter) bool { return f.ColumnIndex >= n })
	s.Sorts = slices.DeleteFunc(slices.Clone(s.Sorts), func(c sortfilter.ColumnSortInfo) bool { return c.ColumnIndex >= n })
	if len(s.ColWidths) > 0 {
		s.ColWidths = maps.Clone(s.ColWidths)
		maps.DeleteFunc(s.ColWidths, func(col, _ int) bool { return col >= n })
	}
	return s.withoutAutoHeights()
}
