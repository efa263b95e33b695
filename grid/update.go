package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/selection"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	e := m.state.Edit
	if e.Custom {
		// The host editor owns the keyboard until CloseCustomEdit.
		return m, nil
	}
	if e.Active() {
		return m.updateEditKey(msg)
	}

	// Bracketed paste inserts text as a clipboard block and never triggers
	// shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		return m.PasteText(string(msg.Runes)), nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Up):
		return m.moveBy(-1, 0, false), nil
	case key.Matches(msg, km.Down):
		return m.moveBy(1, 0, false), nil
	case key.Matches(msg, km.Left):
		return m.moveBy(0, -1, false), nil
	case key.Matches(msg, km.Right):
		return m.moveBy(0, 1, false), nil

	case key.Matches(msg, km.ShiftUp):
		return m.moveBy(-1, 0, true), nil
	case key.Matches(msg, km.ShiftDown):
		return m.moveBy(1, 0, true), nil
	case key.Matches(msg, km.ShiftLeft):
		return m.moveBy(0, -1, true), nil
	case key.Matches(msg, km.ShiftRight):
		return m.moveBy(0, 1, true), nil

	case key.Matches(msg, km.PageUp):
		return m.moveBy(-max(m.frame.PageRows, 1), 0, false), nil
	case key.Matches(msg, km.PageDown):
		return m.moveBy(max(m.frame.PageRows, 1), 0, false), nil
	case key.Matches(msg, km.Home):
		return m.moveTo(cell.At(m.state.Focus.Row, 0)), nil
	case key.Matches(msg, km.End):
		return m.moveTo(cell.At(m.state.Focus.Row, len(m.cfg.Columns)-1)), nil
	case key.Matches(msg, km.First):
		return m.moveTo(cell.At(0, 0)), nil
	case key.Matches(msg, km.Last):
		return m.moveTo(cell.At(m.state.FilteredCount-1, len(m.cfg.Columns)-1)), nil

	case key.Matches(msg, km.SelectAll):
		return m.selectAll(), nil
	case key.Matches(msg, km.Copy):
		m.CopySelectionToClipboard()
		return m, nil
	case key.Matches(msg, km.CopyWorksheet):
		m.CopyWorksheetToClipboard()
		return m, nil
	case key.Matches(msg, km.Paste):
		return m.pasteClipboard(), nil

	case key.Matches(msg, km.Edit):
		return m.beginExplicit(m.state.Focus), nil
	case key.Matches(msg, km.Confirm):
		return m.moveBy(1, 0, false), nil
	case key.Matches(msg, km.Next):
		return m.moveAfterEdit(m.state.Focus, advanceRight).refresh(stageGeometry), nil
	case key.Matches(msg, km.Prev):
		return m.moveAfterEdit(m.state.Focus, advanceLeft).refresh(stageGeometry), nil
	case key.Matches(msg, km.Cancel):
		if m.state.Focus.IsData() && m.state.Selection.Len() > 1 {
			m.state.Selection = selection.New(cell.Single(m.state.Focus))
			return m.refresh(stageGeometry), nil
		}
		return m, nil
	case key.Matches(msg, km.Delete):
		return m.clearCells(), nil
	case key.Matches(msg, km.Backspace):
		return m.beginDirect("")
	case key.Matches(msg, km.Toggle):
		if m.focusedType() == host.TypeBoolean {
			return m.toggle(m.state.Focus), nil
		}
		return m.beginDirect(" ")
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
		return m.beginDirect(string(msg.Runes))
	}
	return m, nil
}

func (m Model) updateEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	e := m.state.Edit

	switch {
	case key.Matches(msg, km.Confirm):
		return m.commitEdit(advanceDown), nil
	case key.Matches(msg, km.Next):
		return m.commitEdit(advanceRight), nil
	case key.Matches(msg, km.Prev):
		return m.commitEdit(advanceLeft), nil
	case key.Matches(msg, km.Cancel):
		return m.cancelEdit(), nil
	case key.Matches(msg, km.Backspace):
		return m.backspace()
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) > 0 && !msg.Alt {
			return m.typeText(string(msg.Runes))
		}
		return m, nil
	case tea.KeySpace:
		return m.typeText(" ")
	}

	// Arrows confirm a direct edit and move, like a spreadsheet. An
	// explicit edit keeps them.
	if e.Mode != EditDirect || e.Cell.FilterRow {
		return m, nil
	}
	var dr, dc int
	switch {
	case key.Matches(msg, km.Up):
		dr = -1
	case key.Matches(msg, km.Down):
		dr = 1
	case key.Matches(msg, km.Left):
		dc = -1
	case key.Matches(msg, km.Right):
		dc = 1
	default:
		return m, nil
	}
	m = m.commitEdit(advanceNone)
	return m.moveBy(dr, dc, false), nil
}

func (m Model) focusedType() host.CellType {
	if !m.state.Focus.IsData() || m.state.FilteredCount == 0 || len(m.cfg.Columns) == 0 {
		return host.TypeText
	}
	_, _, typ := m.valueAt(m.state.Focus)
	return typ
}

// moveBy moves focus (or, with extend, the moving corner of the last
// selection range) by dr rows and dc columns.
func (m Model) moveBy(dr, dc int, extend bool) Model {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	if cols == 0 {
		return m
	}
	origin := m.state.Focus
	if extend {
		if last, ok := m.state.Selection.Last(); ok {
			origin = last.To
		}
	}

	if origin.IsFilterCell() {
		col := min(max(origin.Col+dc, 0), cols-1)
		if dr > 0 && rows > 0 {
			return m.setFocus(cell.At(0, col), false).refresh(stageGeometry)
		}
		m.state.Focus = cell.Coord{Row: cell.Gutter, Col: col, FilterRow: true}
		return m.refresh(stageGeometry)
	}
	if rows == 0 {
		return m
	}
	origin = cell.At(max(origin.Row, 0), max(origin.Col, 0))
	if dr < 0 && origin.Row == 0 && m.cfg.ShowFilterRow && !extend {
		m.state.Focus = cell.Coord{Row: cell.Gutter, Col: origin.Col, FilterRow: true}
		return m.refresh(stageGeometry)
	}
	return m.setFocus(cell.At(origin.Row+dr, origin.Col+dc), extend).refresh(stageGeometry)
}

func (m Model) moveTo(c cell.Coord) Model {
	if m.state.FilteredCount == 0 || len(m.cfg.Columns) == 0 {
		return m
	}
	return m.setFocus(c, false).refresh(stageGeometry)
}

// setFocus focuses the view cell to (clamped). With extend the focus stays
// at the anchor and the last range grows to to.
func (m Model) setFocus(to cell.Coord, extend bool) Model {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	if rows == 0 || cols == 0 {
		return m
	}
	to = cell.Clamp(to, rows, cols)
	s := m.state
	if extend {
		if s.Selection.Empty() {
			anchor := to
			if s.Focus.IsData() {
				anchor = s.Focus
			}
			s.Selection = selection.New(cell.Range{From: anchor, To: to})
		} else {
			s.Selection = s.Selection.ExtendTo(to)
		}
	} else {
		s.Focus = to
		s.Selection = selection.New(cell.Single(to))
	}
	s.Scroll = m.frame.Reveal(to)
	m.state = s
	return m
}

func (m Model) selectAll() Model {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	if rows == 0 || cols == 0 {
		return m
	}
	m.state.Selection = selection.New(cell.Range{From: cell.At(0, 0), To: cell.At(rows-1, cols-1)})
	return m.refresh(stageGeometry)
}

func (m Model) pasteClipboard() Model {
	if m.cfg.Clipboard == nil {
		return m
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Debug("clipboard read failed", "err", err)
		return m
	}
	return m.PasteText(s)
}
