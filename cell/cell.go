package cell

import "fmt"

// Gutter is the sentinel index for the header band (Row) and the row-number
// gutter (Col).
const Gutter = -1

// Coord points at a grid cell by (row, col). Row and Col are 0-based.
//
// Row == Gutter addresses the column header band, Col == Gutter the
// row-number gutter, and (Gutter, Gutter) the select-all corner.
// FilterRow marks a coordinate inside the filter band; its Row is Gutter.
type Coord struct {
	Row       int
	Col       int
	FilterRow bool
}

// At returns the data cell at (row, col).
func At(row, col int) Coord { return Coord{Row: row, Col: col} }

// Corner is the select-all coordinate.
func Corner() Coord { return Coord{Row: Gutter, Col: Gutter} }

func (c Coord) IsCorner() bool     { return c.Row == Gutter && c.Col == Gutter && !c.FilterRow }
func (c Coord) IsColHeader() bool  { return c.Row == Gutter && c.Col >= 0 && !c.FilterRow }
func (c Coord) IsRowGutter() bool  { return c.Col == Gutter && c.Row >= 0 }
func (c Coord) IsData() bool       { return c.Row >= 0 && c.Col >= 0 && !c.FilterRow }
func (c Coord) IsFilterCell() bool { return c.FilterRow && c.Col >= 0 }

func (c Coord) String() string {
	if c.FilterRow {
		return fmt.Sprintf("(filter,%d)", c.Col)
	}
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Compare orders coordinates row-major, then by column.
func Compare(a, b Coord) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

// Range spans two corners in any relative order.
type Range struct {
	From Coord
	To   Coord
}

// Single returns the one-cell range at c.
func Single(c Coord) Range { return Range{From: c, To: c} }

// Bounds returns the normalized rectangle of r.
func (r Range) Bounds() Bounds {
	return Bounds{
		MinRow: min(r.From.Row, r.To.Row),
		MinCol: min(r.From.Col, r.To.Col),
		MaxRow: max(r.From.Row, r.To.Row),
		MaxCol: max(r.From.Col, r.To.Col),
	}
}

// Bounds is an inclusive rectangle with Min <= Max on both axes.
type Bounds struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

func (b Bounds) Rows() int { return b.MaxRow - b.MinRow + 1 }
func (b Bounds) Cols() int { return b.MaxCol - b.MinCol + 1 }

// Size is the number of cells covered by b.
func (b Bounds) Size() int { return b.Rows() * b.Cols() }

func (b Bounds) Contains(c Coord) bool {
	return c.Row >= b.MinRow && c.Row <= b.MaxRow && c.Col >= b.MinCol && c.Col <= b.MaxCol
}

func (b Bounds) ContainsRow(row int) bool {
	return row >= b.MinRow && row <= b.MaxRow
}

// Union returns the smallest rectangle enclosing b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinRow: min(b.MinRow, o.MinRow),
		MinCol: min(b.MinCol, o.MinCol),
		MaxRow: max(b.MaxRow, o.MaxRow),
		MaxCol: max(b.MaxCol, o.MaxCol),
	}
}

// Range converts b back into a range from its min to its max corner.
func (b Bounds) Range() Range {
	return Range{From: At(b.MinRow, b.MinCol), To: At(b.MaxRow, b.MaxCol)}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp clamps a data coordinate into a rows x cols grid.
//
// The returned Coord always satisfies 0 <= Row < rows and 0 <= Col < cols
// (with rows and cols treated as at least 1). Sentinel and filter-band
// coordinates are returned unchanged.
func Clamp(c Coord, rows, cols int) Coord {
	if !c.IsData() && (c.Row == Gutter || c.Col == Gutter || c.FilterRow) {
		return c
	}
	rows = max(rows, 1)
	cols = max(cols, 1)
	return Coord{Row: clampInt(c.Row, 0, rows-1), Col: clampInt(c.Col, 0, cols-1)}
}

// ClampRange clamps both corners of r.
func ClampRange(r Range, rows, cols int) Range {
	return Range{From: Clamp(r.From, rows, cols), To: Clamp(r.To, rows, cols)}
}
