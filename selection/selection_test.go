package selection

import (
	"slices"
	"testing"

	"github.com/devel0/wscanvas/cell"
)

func TestAddExtend_KeepsAnchor(t *testing.T) {
	s := Selection{}.Add(cell.At(2, 2))
	s = s.ExtendTo(cell.At(0, 4))
	s = s.ExtendTo(cell.At(5, 1))

	r, ok := s.Last()
	if !ok {
		t.Fatalf("expected a range")
	}
	if r.From != cell.At(2, 2) {
		t.Fatalf("anchor: got %v, want %v", r.From, cell.At(2, 2))
	}
	if r.To != cell.At(5, 1) {
		t.Fatalf("end: got %v, want %v", r.To, cell.At(5, 1))
	}
	if s.Len() != 1 {
		t.Fatalf("range count: got %d, want %d", s.Len(), 1)
	}
}

func TestTransitions_DoNotMutateReceiver(t *testing.T) {
	base := Selection{}.Add(cell.At(0, 0)).Add(cell.At(1, 1))
	before := base.Ranges()

	_ = base.Add(cell.At(3, 3))
	_ = base.ExtendTo(cell.At(9, 9))
	_ = base.Translate(func(c cell.Coord) cell.Coord { return cell.At(c.Row+1, c.Col) })

	if !slices.Equal(base.Ranges(), before) {
		t.Fatalf("receiver mutated: got %v, want %v", base.Ranges(), before)
	}
}

func TestExtendTo_EmptyActsAsAdd(t *testing.T) {
	s := Selection{}.ExtendTo(cell.At(1, 2))
	if got, want := s.Ranges(), []cell.Range{cell.Single(cell.At(1, 2))}; !slices.Equal(got, want) {
		t.Fatalf("ranges: got %v, want %v", got, want)
	}
}

func TestContainsCell_Modes(t *testing.T) {
	s := New(cell.Range{From: cell.At(3, 3), To: cell.At(1, 1)})

	if !s.ContainsCell(cell.At(2, 2), ModeCell) {
		t.Fatalf("(2,2) must be inside")
	}
	if s.ContainsCell(cell.At(2, 7), ModeCell) {
		t.Fatalf("(2,7) must be outside in cell mode")
	}
	if !s.ContainsCell(cell.At(2, 7), ModeRow) {
		t.Fatalf("(2,7) must be inside in row mode")
	}
	if s.ContainsCell(cell.At(4, 1), ModeRow) {
		t.Fatalf("row 4 must be outside")
	}
}

func TestBounds_UnionOfDisjointRanges(t *testing.T) {
	s := New(
		cell.Range{From: cell.At(1, 1), To: cell.At(2, 2)},
		cell.Range{From: cell.At(7, 5), To: cell.At(6, 4)},
	)
	b, ok := s.Bounds()
	if !ok {
		t.Fatalf("expected bounds")
	}
	if want := (cell.Bounds{MinRow: 1, MinCol: 1, MaxRow: 7, MaxCol: 5}); b != want {
		t.Fatalf("bounds: got %+v, want %+v", b, want)
	}

	if _, ok := (Selection{}).Bounds(); ok {
		t.Fatalf("empty selection must not report bounds")
	}
}

func TestCells_RowMajorNoDedupeRestartable(t *testing.T) {
	s := New(
		cell.Range{From: cell.At(1, 1), To: cell.At(0, 0)},
		cell.Single(cell.At(0, 0)),
	)
	want := []cell.Coord{
		cell.At(0, 0), cell.At(0, 1), cell.At(1, 0), cell.At(1, 1),
		cell.At(0, 0),
	}

	for pass := 0; pass < 2; pass++ {
		got := slices.Collect(s.Cells())
		if !slices.Equal(got, want) {
			t.Fatalf("pass %d cells: got %v, want %v", pass, got, want)
		}
	}
	if got := s.Count(); got != len(want) {
		t.Fatalf("count: got %d, want %d", got, len(want))
	}
}

func TestCells_EarlyBreak(t *testing.T) {
	s := New(cell.Range{From: cell.At(0, 0), To: cell.At(9, 9)})
	n := 0
	for range s.Cells() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("visited: got %d, want %d", n, 3)
	}
}

func TestRowColIdxs_Distinct(t *testing.T) {
	s := New(
		cell.Range{From: cell.At(5, 1), To: cell.At(3, 2)},
		cell.Range{From: cell.At(4, 6), To: cell.At(8, 6)},
		cell.Single(cell.At(0, 2)),
	)
	if got, want := s.RowIdxs(), []int{0, 3, 4, 5, 6, 7, 8}; !slices.Equal(got, want) {
		t.Fatalf("rows: got %v, want %v", got, want)
	}
	if got, want := s.ColIdxs(), []int{1, 2, 6}; !slices.Equal(got, want) {
		t.Fatalf("cols: got %v, want %v", got, want)
	}
}

func TestIsFullWorksheet(t *testing.T) {
	full := New(cell.Range{From: cell.At(9, 2), To: cell.At(0, 0)})
	if !full.IsFullWorksheet(10, 3) {
		t.Fatalf("expected full worksheet")
	}
	if full.IsFullWorksheet(11, 3) {
		t.Fatalf("row count mismatch must not be full")
	}
	split := New(
		cell.Range{From: cell.At(0, 0), To: cell.At(4, 2)},
		cell.Range{From: cell.At(5, 0), To: cell.At(9, 2)},
	)
	if !split.IsFullWorksheet(10, 3) {
		t.Fatalf("union covering the sheet must be full")
	}
}

func TestClamp(t *testing.T) {
	s := New(cell.Range{From: cell.At(2, 2), To: cell.At(40, 9)})
	got := s.Clamp(10, 4)
	if r, _ := got.Last(); r.To != cell.At(9, 3) {
		t.Fatalf("clamped end: got %v, want %v", r.To, cell.At(9, 3))
	}
	if !s.Clamp(0, 4).Empty() {
		t.Fatalf("clamping into an empty grid must clear")
	}
}
