package grid

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/selection"
	"github.com/devel0/wscanvas/sortfilter"
)

type modifiers struct {
	ctrl  bool
	shift bool
}

// updateMouse handles mouse events. Coordinates are relative to the grid's
// top-left corner; hosts that place the grid elsewhere translate them.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isWheel(msg) {
		return m.updateWheel(msg), nil
	}
	if !m.focused {
		return m, nil
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.pointerPress(msg.X, msg.Y, modifiers{ctrl: msg.Ctrl, shift: msg.Shift}, 0)
	case tea.MouseActionMotion:
		return m.pointerMove(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.state.drag = drag{}
	}
	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) updateWheel(msg tea.MouseMsg) Model {
	var dr, dc int
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		dr = -1
	case tea.MouseButtonWheelDown:
		dr = 1
	case tea.MouseButtonWheelLeft:
		dc = -1
	case tea.MouseButtonWheelRight:
		dc = 1
	}
	if msg.Shift {
		dr, dc = dc, dr
	}
	return m.scrollBy(dr*m.cfg.WheelStep, dc*m.cfg.WheelStep)
}

// scrollBy moves the scroll offset and records whether the move was
// consumed.
func (m Model) scrollBy(dr, dc int) Model {
	before := m.state.Scroll
	next := m.frame.ClampScroll(geometry.Offset{Row: before.Row + dr, Col: before.Col + dc})
	if next == before {
		m.lastWheelConsumed = !m.cfg.PassWheelAtBounds
		return m
	}
	m.lastWheelConsumed = true
	m.state.Scroll = next
	return m.refresh(stageGeometry)
}

// pointerPress handles a primary press at (x, y). tol widens scrollbar hit
// areas for touch input.
func (m Model) pointerPress(x, y int, mods modifiers, tol int) (Model, tea.Cmd) {
	if next, ok := m.scrollbarPress(x, y, tol); ok {
		return next, nil
	}

	if col, ok := m.frame.ResizeHandleAt(x, y, m.cfg.ResizeTolerance); ok {
		m = m.commitPendingEdit(cell.Coord{})
		m.state.drag = drag{kind: dragResize, col: col, startX: x, startWidth: m.ColumnWidth(col)}
		return m, nil
	}

	c, ok := m.frame.CellAt(x, y)
	if !ok {
		return m, nil
	}
	m = m.commitPendingEdit(c)
	if e := m.state.Edit; e.Active() && e.Cell == c {
		return m, nil
	}

	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	switch {
	case c.IsCorner():
		return m.selectAll(), nil

	case c.IsFilterCell():
		return m.beginExplicit(c), nil

	case c.IsColHeader():
		if m.cfg.SortOnHeaderClick {
			return m.SetSorting(sortfilter.Cycle(m.state.Sorts, c.Col)), nil
		}
		if rows == 0 {
			return m, nil
		}
		r := cell.Range{From: cell.At(0, c.Col), To: cell.At(rows-1, c.Col)}
		return m.selectBand(r, cell.At(m.frame.FirstRow(), c.Col), mods), nil

	case c.IsRowGutter():
		if cols == 0 {
			return m, nil
		}
		r := cell.Range{From: cell.At(c.Row, 0), To: cell.At(c.Row, cols-1)}
		return m.selectBand(r, cell.At(c.Row, m.frame.FirstCol()), mods), nil
	}

	if !c.IsData() {
		return m, nil
	}

	now := m.now()
	double := m.lastClick.cell == c && now.Sub(m.lastClick.at) <= m.cfg.DoubleClick
	m.lastClick = click{at: now, cell: c}
	if double && !mods.ctrl && !mods.shift {
		m.lastClick = click{}
		m = m.setFocus(c, false)
		return m.beginExplicit(c), nil
	}

	switch {
	case mods.ctrl:
		m.state.Focus = c
		m.state.Selection = m.state.Selection.AddRange(cell.Single(c))
		m.state.Scroll = m.frame.Reveal(c)
	case mods.shift:
		m = m.setFocus(c, true)
	default:
		m = m.setFocus(c, false)
	}
	m.state.drag = drag{kind: dragSelect}
	return m.refresh(stageGeometry), nil
}

// commitPendingEdit confirms a built-in edit unless the press targets the
// edited cell itself.
func (m Model) commitPendingEdit(target cell.Coord) Model {
	e := m.state.Edit
	if !e.Active() || e.Custom || e.Cell == target {
		return m
	}
	return m.commitEdit(advanceNone)
}

// selectBand selects a whole row or column range. Ctrl adds it, Shift
// extends the last range to its far corner.
func (m Model) selectBand(r cell.Range, focus cell.Coord, mods modifiers) Model {
	s := m.state.Selection
	switch {
	case mods.ctrl:
		s = s.AddRange(r)
	case mods.shift && !s.Empty():
		last, _ := s.Last()
		b := last.Bounds().Union(r.Bounds())
		ranges := s.Ranges()
		ranges[len(ranges)-1] = b.Range()
		s = selection.New(ranges...)
	default:
		s = selection.New(r)
	}
	m.state.Selection = s
	m.state.Focus = cell.Clamp(focus, m.state.FilteredCount, len(m.cfg.Columns))
	return m.refresh(stageGeometry)
}

// scrollbarPress starts a handle drag or jumps a page on a track press.
func (m Model) scrollbarPress(x, y, tol int) (Model, bool) {
	if b := m.frame.VBar; b.Visible && widen(b.Track, tol, 0).Contains(x, y) {
		if y >= b.Handle.Y && y < b.Handle.Y+b.Handle.H {
			m.state.drag = drag{kind: dragVScroll, grab: y - b.Handle.Y}
			return m, true
		}
		page := max(m.frame.PageRows, 1)
		if y < b.Handle.Y {
			page = -page
		}
		return m.scrollBy(page, 0), true
	}
	if b := m.frame.HBar; b.Visible && widen(b.Track, 0, tol).Contains(x, y) {
		if x >= b.Handle.X && x < b.Handle.X+b.Handle.W {
			m.state.drag = drag{kind: dragHScroll, grab: x - b.Handle.X}
			return m, true
		}
		page := max(m.frame.PageCols, 1)
		if x < b.Handle.X {
			page = -page
		}
		return m.scrollBy(0, page), true
	}
	return m, false
}

func widen(r geometry.Rect, dx, dy int) geometry.Rect {
	return geometry.Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// pointerMove continues the active drag.
func (m Model) pointerMove(x, y int) (Model, tea.Cmd) {
	d := m.state.drag
	switch d.kind {
	case dragVScroll:
		m.state.Scroll.Row = m.frame.ScrollForFactor(geometry.Vertical, m.frame.VScrollFactor(y, d.grab))
		return m.refresh(stageGeometry), nil
	case dragHScroll:
		m.state.Scroll.Col = m.frame.ScrollForFactor(geometry.Horizontal, m.frame.HScrollFactor(x, d.grab))
		return m.refresh(stageGeometry), nil
	case dragResize:
		return m.SetColumnWidth(d.col, d.startWidth+(x-d.startX))
	case dragSelect:
		c, ok := m.dragTarget(x, y)
		if !ok {
			return m, nil
		}
		m.state.Selection = m.state.Selection.ExtendTo(c)
		m.state.Scroll = m.frame.Reveal(c)
		return m.refresh(stageGeometry), nil
	}
	return m, nil
}

// dragTarget maps a pointer position to a data cell, stepping one row or
// column past the content edge so a drag outside the grid scrolls it.
func (m Model) dragTarget(x, y int) (cell.Coord, bool) {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	ct := m.frame.Content
	if rows == 0 || cols == 0 || ct.Empty() || len(m.frame.Rows) == 0 || len(m.frame.Cols) == 0 {
		return cell.Coord{}, false
	}
	cx := min(max(x, ct.X), ct.X+ct.W-1)
	cy := min(max(y, ct.Y), ct.Y+ct.H-1)

	c := cell.At(spanIndexAt(m.frame.Rows, cy), spanIndexAt(m.frame.Cols, cx))
	switch {
	case y < ct.Y:
		c.Row = m.frame.FirstRow() - 1
	case y >= ct.Y+ct.H:
		c.Row++
	}
	switch {
	case x < ct.X:
		c.Col = m.frame.FirstCol() - 1
	case x >= ct.X+ct.W:
		c.Col++
	}
	return cell.Clamp(c, rows, cols), true
}

// spanIndexAt returns the index of the span covering p, or of the last span
// when p is past all of them. spans must be non-empty.
func spanIndexAt(spans []geometry.Span, p int) int {
	for _, s := range spans {
		if p < s.End() {
			return s.Index
		}
	}
	return spans[len(spans)-1].Index
}
