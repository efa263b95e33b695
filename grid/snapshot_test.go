package grid

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/sortfilter"
)

func TestRenderSnapshot_StableForSameFrame(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	s1 := m.RenderSnapshot()
	if s1.Token == 0 {
		t.Fatalf("snapshot token must be non-zero")
	}
	if got, want := len(s1.Rows), 3; got != want {
		t.Fatalf("snapshot rows: got %d, want %d", got, want)
	}
	if got, want := len(s1.Cols), 2; got != want {
		t.Fatalf("snapshot cols: got %d, want %d", got, want)
	}
	s2 := m.RenderSnapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("same frame snapshot mismatch")
	}

	s1.Rows[0].RealRow = 99
	if m.RenderSnapshot().Rows[0].RealRow == 99 {
		t.Fatalf("snapshot isolation violated")
	}
}

func TestRenderSnapshot_TokenChangesWithState(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	s := m.RenderSnapshot()
	if !m.SnapshotCurrent(s) {
		t.Fatalf("fresh snapshot must be current")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.SnapshotCurrent(s) {
		t.Fatalf("snapshot must be stale after a focus move")
	}
	if _, ok := m.CellAtWithSnapshot(s, 3, 1); ok {
		t.Fatalf("stale snapshot hit test must fail")
	}
	s = m.RenderSnapshot()
	if c, ok := m.CellAtWithSnapshot(s, 3, 1); !ok || c != cell.At(0, 0) {
		t.Fatalf("current snapshot hit test: got %v/%v", c, ok)
	}
}

func TestRenderSnapshot_RowsCarryRealIndex(t *testing.T) {
	rows := [][]any{{"a", 1}, {"b", 2}, {"a", 3}}
	m, _ := newTestGrid(t, rows, nil)
	m = m.SetFilter(0, "a")
	m = m.SetSorting([]sortfilter.ColumnSortInfo{{ColumnIndex: 1, Direction: sortfilter.Descending}})

	s := m.RenderSnapshot()
	r, ok := s.Row(1)
	if !ok {
		t.Fatalf("view row 1 missing from snapshot")
	}
	if got, want := r.RealRow, m.ViewRowToRealRow(1); got != want {
		t.Fatalf("real row: got %d, want %d", got, want)
	}
	if r.ScreenY != 2 || r.Height != 1 {
		t.Fatalf("row band: got %+v", r)
	}
}
