package grid

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/sortfilter"
)

func clickAt(m Model, x, y int) Model {
	m, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	return m
}

func wheel(m Model, b tea.MouseButton) Model {
	m, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: b})
	return m
}

func fixedClock(m Model, at time.Time) Model {
	m.now = func() time.Time { return at }
	return m
}

func TestMouse_ClickFocusesCell(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	// gutter 2, column 1 starts at x=15, row 1 at y=2.
	m = clickAt(m, 16, 2)
	if got := m.FocusedCell(); got != cell.At(1, 1) {
		t.Fatalf("focus: got %v, want %v", got, cell.At(1, 1))
	}
}

func TestMouse_CtrlClickAddsRangeShiftClickExtends(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	m = clickAt(m, 3, 1)
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 3, Ctrl: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Selection().Len(); got != 2 {
		t.Fatalf("ranges after ctrl click: got %d, want 2", got)
	}

	m = clickAt(m, 3, 1)
	m, _ = m.Update(tea.MouseMsg{X: 16, Y: 3, Shift: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	r, _ := m.Selection().Last()
	if want := (cell.Range{From: cell.At(0, 0), To: cell.At(2, 1)}); r != want || m.Selection().Len() != 1 {
		t.Fatalf("shift click: got %v (%d ranges), want %v", r, m.Selection().Len(), want)
	}
}

func TestMouse_DragExtendsSelection(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 16, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 16, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	r, _ := m.Selection().Last()
	if want := (cell.Range{From: cell.At(0, 0), To: cell.At(1, 1)}); r != want {
		t.Fatalf("drag: got %v, want %v", r, want)
	}

	m, _ = m.Update(tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionMotion})
	if r2, _ := m.Selection().Last(); r2 != r {
		t.Fatalf("motion after release changed selection: got %v", r2)
	}
}

func TestMouse_DoubleClickOpensExplicitEdit(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m = fixedClock(m, t0)
	m = clickAt(m, 3, 2)
	m = clickAt(m, 3, 2)
	if e := m.EditState(); e.Mode != EditExplicit || e.Cell != cell.At(1, 0) || e.Text != "a" {
		t.Fatalf("edit: got %+v", e)
	}

	m = press(m, tea.KeyEsc)
	m = fixedClock(m, t0)
	m = clickAt(m, 3, 3)
	m = fixedClock(m, t0.Add(time.Second))
	m = clickAt(m, 3, 3)
	if m.EditState().Active() {
		t.Fatalf("slow clicks must not open an edit")
	}
}

func TestMouse_ClickElsewhereCommitsEdit(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(runes("m"))
	m = clickAt(m, 16, 3)
	if got := tbl.Value(0, 0); got != "m" {
		t.Fatalf("value: got %v, want %q", got, "m")
	}
	if got := m.FocusedCell(); got != cell.At(2, 1) {
		t.Fatalf("focus: got %v, want %v", got, cell.At(2, 1))
	}
}

func TestMouse_HeaderGutterAndCorner(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)

	m = clickAt(m, 16, 0)
	r, _ := m.Selection().Last()
	if want := (cell.Range{From: cell.At(0, 1), To: cell.At(2, 1)}); r != want {
		t.Fatalf("header click: got %v, want %v", r, want)
	}

	m = clickAt(m, 0, 2)
	r, _ = m.Selection().Last()
	if want := (cell.Range{From: cell.At(1, 0), To: cell.At(1, 1)}); r != want {
		t.Fatalf("gutter click: got %v, want %v", r, want)
	}

	m = clickAt(m, 0, 0)
	if !m.Selection().IsFullWorksheet(3, 2) {
		t.Fatalf("corner click must select all: got %v", m.Selection().Ranges())
	}
}

func TestMouse_HeaderClickCyclesSort(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), func(c *Config) { c.SortOnHeaderClick = true })

	m = clickAt(m, 5, 0)
	if got := sortfilter.DirectionOf(m.Sorting(), 0); got != sortfilter.Ascending {
		t.Fatalf("first click: got %v, want asc", got)
	}
	if tbl.Value(0, 0) != "a" || tbl.Value(2, 0) != "c" {
		t.Fatalf("ascending order: got %v %v %v", tbl.Row(0), tbl.Row(1), tbl.Row(2))
	}

	m = clickAt(m, 5, 0)
	if tbl.Value(0, 0) != "c" {
		t.Fatalf("descending order: got first %v", tbl.Row(0))
	}

	m = clickAt(m, 5, 0)
	if got := len(m.Sorting()); got != 0 {
		t.Fatalf("third click clears the sort: got %v", m.Sorting())
	}
}

func TestMouse_WheelScrollsAndReportsBounds(t *testing.T) {
	m, _ := newTestGrid(t, manyRows(100), func(c *Config) { c.PassWheelAtBounds = true })

	m = wheel(m, tea.MouseButtonWheelDown)
	if got := m.State().Scroll.Row; got != 3 {
		t.Fatalf("scroll: got %d, want 3", got)
	}
	if !m.LastWheelConsumed() {
		t.Fatalf("wheel inside bounds must be consumed")
	}

	m = wheel(m, tea.MouseButtonWheelUp)
	m = wheel(m, tea.MouseButtonWheelUp)
	if got := m.State().Scroll.Row; got != 0 {
		t.Fatalf("scroll: got %d, want 0", got)
	}
	if m.LastWheelConsumed() {
		t.Fatalf("wheel at the top bound must pass through")
	}
}

func TestMouse_WheelSequenceStaysInBounds(t *testing.T) {
	m, _ := newTestGrid(t, manyRows(100), nil)
	buttons := []tea.MouseButton{
		tea.MouseButtonWheelDown, tea.MouseButtonWheelDown, tea.MouseButtonWheelUp,
	}
	for i := range 200 {
		m = wheel(m, buttons[i%len(buttons)])
		f := m.Frame()
		if s := m.State().Scroll.Row; s < 0 || s > f.MaxScroll.Row {
			t.Fatalf("step %d: scroll %d out of [0,%d]", i, s, f.MaxScroll.Row)
		}
	}
	if got, want := m.State().Scroll.Row, m.Frame().MaxScroll.Row; got != want {
		t.Fatalf("net downward wheel: got %d, want max %d", got, want)
	}
}

func TestMouse_ScrollbarDragAndTrackJump(t *testing.T) {
	m, _ := newTestGrid(t, manyRows(100), nil)
	bar := m.Frame().VBar
	if !bar.Visible {
		t.Fatalf("vertical bar should be visible")
	}
	x := bar.Track.X

	m, _ = m.Update(tea.MouseMsg{X: x, Y: bar.Track.Y + bar.Track.H - 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.State().Scroll.Row, m.Frame().PageRows; got != want {
		t.Fatalf("track jump: got %d, want %d", got, want)
	}

	h := m.Frame().VBar.Handle
	m, _ = m.Update(tea.MouseMsg{X: x, Y: h.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: x, Y: bar.Track.Y + bar.Track.H + 5, Action: tea.MouseActionMotion})
	if got, want := m.State().Scroll.Row, m.Frame().MaxScroll.Row; got != want {
		t.Fatalf("drag to end: got %d, want %d", got, want)
	}
	m, _ = m.Update(tea.MouseMsg{X: x, Y: -5, Action: tea.MouseActionMotion})
	if got := m.State().Scroll.Row; got != 0 {
		t.Fatalf("drag to start: got %d, want 0", got)
	}
	m, _ = m.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionRelease})
	if m.State().drag.kind != dragNone {
		t.Fatalf("release must end the drag")
	}
}

func TestMouse_ColumnResize(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	// column 0 spans x=2..13.
	m, _ = m.Update(tea.MouseMsg{X: 13, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 18, Y: 0, Action: tea.MouseActionMotion})
	if got := m.ColumnWidth(0); got != 17 {
		t.Fatalf("width: got %d, want 17", got)
	}
	m, _ = m.Update(tea.MouseMsg{X: -40, Y: 0, Action: tea.MouseActionMotion})
	if got := m.ColumnWidth(0); got != 1 {
		t.Fatalf("min width: got %d, want 1", got)
	}
	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease})
	if got := m.State().ColWidths[0]; got != 1 {
		t.Fatalf("override: got %d, want 1", got)
	}
}

func TestMouse_FilterBandClickOpensFilterEdit(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), func(c *Config) { c.ShowFilterRow = true })
	m = clickAt(m, 3, 1)
	e := m.EditState()
	if !e.Active() || !e.Cell.IsFilterCell() || e.Cell.Col != 0 {
		t.Fatalf("filter edit: got %+v", e)
	}
	m, _ = m.Update(runes("a"))
	if got := m.State().FilteredCount; got != 1 {
		t.Fatalf("filtered count: got %d, want 1", got)
	}
}
