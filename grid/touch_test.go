package grid

import (
	"testing"

	"github.com/devel0/wscanvas/cell"
)

func touchSeq(m Model, msgs ...TouchMsg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestTouch_DragAccumulatesBySensitivity(t *testing.T) {
	m, _ := newTestGrid(t, manyRows(100), func(c *Config) { c.TouchSensitivity = 2 })

	m = touchSeq(m,
		TouchMsg{Action: TouchStart, X: 10, Y: 8},
		TouchMsg{Action: TouchMove, X: 10, Y: 4},
	)
	if got := m.State().Scroll.Row; got != 2 {
		t.Fatalf("after 4 cells: got scroll %d, want 2", got)
	}

	m = touchSeq(m, TouchMsg{Action: TouchMove, X: 10, Y: 3})
	if got := m.State().Scroll.Row; got != 2 {
		t.Fatalf("below sensitivity: got scroll %d, want 2", got)
	}
	m = touchSeq(m, TouchMsg{Action: TouchMove, X: 10, Y: 2})
	if got := m.State().Scroll.Row; got != 3 {
		t.Fatalf("accumulated remainder: got scroll %d, want 3", got)
	}

	m = touchSeq(m, TouchMsg{Action: TouchMove, X: 10, Y: 8}, TouchMsg{Action: TouchEnd, X: 10, Y: 8})
	if got := m.State().Scroll.Row; got != 0 {
		t.Fatalf("drag back clamps at the top: got %d, want 0", got)
	}
	if got := m.FocusedCell(); got != cell.At(0, 0) {
		t.Fatalf("a drag must not move focus: got %v", got)
	}
}

func TestTouch_TapFocuses(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	m = touchSeq(m,
		TouchMsg{Action: TouchStart, X: 16, Y: 2},
		TouchMsg{Action: TouchEnd, X: 16, Y: 2},
	)
	if got := m.FocusedCell(); got != cell.At(1, 1) {
		t.Fatalf("tap: got %v, want %v", got, cell.At(1, 1))
	}
}

func TestTouch_ScrollbarWithinTolerance(t *testing.T) {
	m, _ := newTestGrid(t, manyRows(100), func(c *Config) { c.ScrollbarTouchTolerance = 2 })
	bar := m.Frame().VBar
	h := bar.Handle

	// Two cells left of the handle still grabs it.
	m = touchSeq(m,
		TouchMsg{Action: TouchStart, X: bar.Track.X - 2, Y: h.Y},
		TouchMsg{Action: TouchMove, X: bar.Track.X - 2, Y: bar.Track.Y + bar.Track.H},
	)
	if got, want := m.State().Scroll.Row, m.Frame().MaxScroll.Row; got != want {
		t.Fatalf("touch drag on bar: got %d, want %d", got, want)
	}
	m = touchSeq(m, TouchMsg{Action: TouchEnd, X: 0, Y: 0})
	if m.State().drag.kind != dragNone {
		t.Fatalf("touch end must clear the drag")
	}
}
