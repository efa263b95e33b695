package geometry

import (
	"testing"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/viewmap"
)

func baseLayout() Layout {
	return Layout{
		Width:         40,
		Height:        12,
		Rows:          100,
		Cols:          10,
		RowHeight:     1,
		ColWidth:      8,
		ColSeparator:  1,
		GutterWidth:   4,
		HeaderHeight:  1,
		ScrollbarSize: 1,
		MinHandle:     1,
		VScroll:       ScrollbarAuto,
		HScroll:       ScrollbarAuto,
	}
}

func TestCompute_FullRowsAndPartialRow(t *testing.T) {
	l := Layout{
		Width:        50,
		Height:       100,
		Rows:         10,
		Cols:         1,
		RowHeight:    30,
		RowSeparator: 1,
		ColWidth:     50,
		VScroll:      ScrollbarOff,
		HScroll:      ScrollbarOff,
	}
	f := Compute(l)
	if f.VisibleRows != 3 {
		t.Fatalf("visible rows: got %d, want 3", f.VisibleRows)
	}
	if !f.PartialRow {
		t.Fatalf("partial row: got false, want true")
	}
	if len(f.Rows) != 3 {
		t.Fatalf("rendered rows without partial: got %d, want 3", len(f.Rows))
	}

	l.PartialRows = true
	f = Compute(l)
	if len(f.Rows) != 4 || !f.Rows[3].Partial || f.Rows[3].Size != 7 {
		t.Fatalf("partial span: got %+v", f.Rows)
	}
	if f.VisibleRows != 3 {
		t.Fatalf("visible rows with partial: got %d, want 3", f.VisibleRows)
	}
}

func TestCompute_RowTallerThanViewport(t *testing.T) {
	f := Compute(Layout{Width: 10, Height: 5, Rows: 3, Cols: 1, RowHeight: 8, ColWidth: 10, VScroll: ScrollbarOff, HScroll: ScrollbarOff})
	if f.VisibleRows != 0 || !f.PartialRow {
		t.Fatalf("visible=%d partial=%v, want 0/true", f.VisibleRows, f.PartialRow)
	}
}

func TestCompute_ZeroArea(t *testing.T) {
	f := Compute(Layout{Rows: 5, Cols: 5})
	if f.VisibleRows != 0 || f.VisibleCols != 0 || len(f.Rows) != 0 || len(f.Cols) != 0 {
		t.Fatalf("zero area: got %+v", f)
	}
}

func TestCompute_ScrollClamp(t *testing.T) {
	l := baseLayout()
	l.Scroll = Offset{Row: 1000, Col: -3}
	f := Compute(l)
	if f.Scroll.Col != 0 {
		t.Fatalf("col scroll: got %d, want 0", f.Scroll.Col)
	}
	// header 1 + hbar 1 leave 10 rows.
	if f.PageRows != 10 {
		t.Fatalf("page rows: got %d, want 10", f.PageRows)
	}
	if want := 100 - 10; f.Scroll.Row != want || f.MaxScroll.Row != want {
		t.Fatalf("row scroll: got %d (max %d), want %d", f.Scroll.Row, f.MaxScroll.Row, want)
	}
	last := f.Rows[len(f.Rows)-1]
	if last.Index != 99 {
		t.Fatalf("last visible row: got %d, want 99", last.Index)
	}
}

func TestCompute_FrozenPrefix(t *testing.T) {
	l := baseLayout()
	l.FrozenRows = 2
	l.FrozenCols = 1
	l.Scroll = Offset{Row: 5, Col: 2}
	f := Compute(l)

	if f.Rows[0].Index != 0 || f.Rows[1].Index != 1 || !f.Rows[0].Frozen {
		t.Fatalf("frozen rows: got %+v", f.Rows[:2])
	}
	if got, want := f.Rows[2].Index, 2+5; got != want {
		t.Fatalf("first scrollable row: got %d, want %d", got, want)
	}
	if f.FirstRow() != 7 {
		t.Fatalf("first row: got %d, want 7", f.FirstRow())
	}
	if f.Cols[0].Index != 0 || f.Cols[1].Index != 3 {
		t.Fatalf("cols: got %+v", f.Cols)
	}
}

func TestCompute_ScrollbarFixedPoint(t *testing.T) {
	// Rows fit exactly until the horizontal bar steals a line.
	l := Layout{
		Width: 20, Height: 5, Rows: 5, Cols: 3,
		RowHeight: 1, ColWidth: 7, ScrollbarSize: 1,
	}
	f := Compute(l)
	if !f.HBar.Visible {
		t.Fatalf("horizontal bar should be visible")
	}
	if !f.VBar.Visible {
		t.Fatalf("vertical bar should turn on once the horizontal bar shrinks the area")
	}
	if f.Content.W != 19 || f.Content.H != 4 {
		t.Fatalf("content: got %+v, want 19x4", f.Content)
	}

	l.Cols = 2
	f = Compute(l)
	if f.HBar.Visible || f.VBar.Visible {
		t.Fatalf("everything fits: got v=%v h=%v", f.VBar.Visible, f.HBar.Visible)
	}
}

func TestCompute_RowHeightOverridesFollowViewMap(t *testing.T) {
	view := viewmap.New([]int{3, 1, 2, 0}, 4)
	f := Compute(Layout{
		Width: 10, Height: 20, Rows: 4, Cols: 1, RowHeight: 1, ColWidth: 10,
		RowHeights: map[int]int{3: 5}, View: view,
		VScroll: ScrollbarOff, HScroll: ScrollbarOff,
	})
	if f.Rows[0].Size != 5 || f.Rows[1].Pos != 5 {
		t.Fatalf("view row 0 is real row 3: got %+v", f.Rows)
	}
}

func TestCellAt(t *testing.T) {
	l := baseLayout()
	l.FilterHeight = 1
	l.Rows = 5
	l.Cols = 3
	f := Compute(l)

	cases := []struct {
		x, y int
		want cell.Coord
		ok   bool
	}{
		{0, 0, cell.Corner(), true},
		{5, 0, cell.Coord{Row: cell.Gutter, Col: 0}, true},
		{5, 1, cell.Coord{Row: cell.Gutter, Col: 0, FilterRow: true}, true},
		{1, 2, cell.Coord{Row: 0, Col: cell.Gutter}, true},
		{4, 2, cell.At(0, 0), true},
		{12, 3, cell.At(1, 0), true}, // separator belongs to column 0
		{13, 3, cell.At(1, 1), true},
		{35, 3, cell.Coord{}, false},
		{5, 10, cell.Coord{}, false},
		{-1, 0, cell.Coord{}, false},
	}
	for _, c := range cases {
		got, ok := f.CellAt(c.x, c.y)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("CellAt(%d,%d): got %v/%v, want %v/%v", c.x, c.y, got, ok, c.want, c.ok)
		}
	}
}

func TestCellRect_InverseOfCellAt(t *testing.T) {
	l := baseLayout()
	l.Scroll = Offset{Row: 20, Col: 1}
	f := Compute(l)
	for _, rs := range f.Rows {
		for _, cs := range f.Cols {
			c := cell.At(rs.Index, cs.Index)
			r, ok := f.CellRect(c)
			if !ok {
				t.Fatalf("CellRect(%v) not visible", c)
			}
			got, ok := f.CellAt(r.X, r.Y)
			if !ok || got != c {
				t.Fatalf("CellAt(CellRect(%v)): got %v/%v", c, got, ok)
			}
		}
	}
	if _, ok := f.CellRect(cell.At(0, 0)); ok {
		t.Fatalf("scrolled-out cell must not have a rect")
	}
}

func TestResizeHandleAt(t *testing.T) {
	f := Compute(baseLayout())
	// column 0 spans x=4..11, separator at 12.
	if col, ok := f.ResizeHandleAt(11, 0, 1); !ok || col != 0 {
		t.Fatalf("edge: got %d/%v, want 0/true", col, ok)
	}
	if col, ok := f.ResizeHandleAt(12, 0, 1); !ok || col != 0 {
		t.Fatalf("separator: got %d/%v, want 0/true", col, ok)
	}
	if _, ok := f.ResizeHandleAt(7, 0, 1); ok {
		t.Fatalf("middle of header must not hit")
	}
	if _, ok := f.ResizeHandleAt(11, 3, 1); ok {
		t.Fatalf("data rows must not hit")
	}
}

func TestScrollFactor(t *testing.T) {
	f := Compute(baseLayout())
	if !f.VBar.Visible {
		t.Fatalf("vertical bar should be visible")
	}
	tr := f.VBar.Track
	if got := f.VScrollFactor(tr.Y-5, 0); got != 0 {
		t.Fatalf("above track: got %v, want 0", got)
	}
	if got := f.VScrollFactor(tr.Y+tr.H+5, 0); got != 1 {
		t.Fatalf("below track: got %v, want 1", got)
	}
	if got := f.ScrollForFactor(Vertical, 1); got != f.MaxScroll.Row {
		t.Fatalf("factor 1: got %d, want %d", got, f.MaxScroll.Row)
	}
	if got := f.ScrollForFactor(Vertical, 0.5); got != 45 {
		t.Fatalf("factor 0.5: got %d, want 45", got)
	}

	l := baseLayout()
	l.Scroll.Row = f.MaxScroll.Row
	end := Compute(l)
	h := end.VBar.Handle
	if h.Y+h.H != tr.Y+tr.H {
		t.Fatalf("handle at max scroll must touch track end: got %+v in %+v", h, tr)
	}
}

func TestScrollStaysInBounds(t *testing.T) {
	l := baseLayout()
	steps := []int{3, -10, 50, 200, -7, 1, -1000, 90, 9}
	for _, d := range steps {
		l.Scroll.Row += d
		f := Compute(l)
		if f.Scroll.Row < 0 || f.Scroll.Row > l.Rows-f.PageRows {
			t.Fatalf("scroll %d out of [0,%d]", f.Scroll.Row, l.Rows-f.PageRows)
		}
		l.Scroll = f.Scroll
	}
}

func TestReveal(t *testing.T) {
	f := Compute(baseLayout())
	o := f.Reveal(cell.At(30, 0))
	if o.Row != 30-f.PageRows+1 {
		t.Fatalf("reveal below: got %d, want %d", o.Row, 30-f.PageRows+1)
	}
	l := baseLayout()
	l.Scroll = Offset{Row: 40}
	f = Compute(l)
	if o := f.Reveal(cell.At(10, 0)); o.Row != 10 {
		t.Fatalf("reveal above: got %d, want 10", o.Row)
	}
	if o := f.Reveal(cell.At(42, 0)); o.Row != 40 {
		t.Fatalf("visible cell must not scroll: got %d", o.Row)
	}
}
