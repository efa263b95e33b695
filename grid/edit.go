package grid

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/internal/textwidth"
	"github.com/devel0/wscanvas/selection"
	"github.com/devel0/wscanvas/sortfilter"
)

// advance is the focus movement after a confirmed edit.
type advance uint8

const (
	advanceNone advance = iota
	advanceDown
	advanceRight
	advanceLeft
)

type cellWrite struct {
	cell  cell.Coord // real space
	value any
}

// editable reports whether the view cell c accepts a value change.
func (m Model) editable(c cell.Coord) bool {
	return c.IsData() &&
		c.Row < m.state.FilteredCount &&
		c.Col < len(m.cfg.Columns) &&
		!m.readonly(c)
}

// valueAt returns the real coordinate, value and type of the view cell c.
func (m Model) valueAt(c cell.Coord) (cell.Coord, any, host.CellType) {
	real := m.realCell(c)
	v := m.cfg.Source.Value(real.Row, real.Col)
	return real, v, m.cellType(real, v)
}

// beginDirect opens a direct edit seeded with the typed text.
func (m Model) beginDirect(seed string) (Model, tea.Cmd) {
	f := m.state.Focus
	if f.IsFilterCell() {
		m.state.Edit = Edit{
			Mode: EditDirect,
			Cell: f,
			Text: sortfilter.FilterText(m.state.Filters, f.Col) + seed,
		}
		return m.scheduleFilter()
	}
	if !m.editable(f) {
		return m, nil
	}
	real, _, typ := m.valueAt(f)
	if _, ok := m.cfg.Source.Editor(real); ok {
		return m, nil
	}
	switch typ {
	case host.TypeBoolean:
		return m, nil
	case host.TypeNumber:
		if !host.IsNumericInput(seed) {
			return m, nil
		}
	}
	m.state.Edit = Edit{Mode: EditDirect, Cell: f, Text: seed}
	return m.refresh(stageGeometry), nil
}

// beginExplicit loads the value of the view cell c for editing. Boolean
// cells flip instead and cells with a host editor open it.
func (m Model) beginExplicit(c cell.Coord) Model {
	if c.IsFilterCell() {
		m.state.Focus = c
		m.state.Edit = Edit{Mode: EditExplicit, Cell: c, Text: sortfilter.FilterText(m.state.Filters, c.Col)}
		return m.refresh(stageGeometry)
	}
	if !m.editable(c) {
		return m
	}
	real, v, typ := m.valueAt(c)
	if _, ok := m.cfg.Source.Editor(real); ok {
		m, _ = m.OpenCustomEdit(c)
		return m
	}
	if typ == host.TypeBoolean {
		return m.toggle(c)
	}
	m.state.Edit = Edit{Mode: EditExplicit, Cell: c, Text: host.Text(typ, v)}
	return m.refresh(stageGeometry)
}

// typeText appends s to the pending edit.
func (m Model) typeText(s string) (Model, tea.Cmd) {
	return m.setEditText(m.state.Edit.Text + s)
}

func (m Model) backspace() (Model, tea.Cmd) {
	return m.setEditText(textwidth.DropLast(m.state.Edit.Text))
}

func (m Model) setEditText(next string) (Model, tea.Cmd) {
	e := m.state.Edit
	if !e.Active() || e.Custom {
		return m, nil
	}
	if e.Cell.FilterRow {
		e.Text = next
		m.state.Edit = e
		return m.scheduleFilter()
	}
	if _, _, typ := m.valueAt(e.Cell); typ == host.TypeNumber && !host.IsNumericInput(next) {
		return m, nil
	}
	e.Text = next
	m.state.Edit = e
	return m.refresh(stageGeometry), nil
}

// commitEdit confirms the pending edit, writes it through the host and
// moves focus.
func (m Model) commitEdit(adv advance) Model {
	e := m.state.Edit
	if !e.Active() {
		return m
	}
	m.state.Edit = Edit{}

	if e.Cell.FilterRow {
		m.filterSeq++
		m.state = m.state.withFilters(sortfilter.WithFilter(m.state.Filters, e.Cell.Col, e.Text))
		m.log.Debug("filter applied", "col", e.Cell.Col, "text", e.Text)
		return m.refresh(stageSort)
	}

	real, prev, typ := m.valueAt(e.Cell)
	next, ok := e.Value, true
	if !e.Custom {
		next, ok = host.Parse(typ, e.Text, prev)
	}
	m = m.moveAfterEdit(e.Cell, adv)
	if !ok {
		m.log.Debug("edit rejected", "cell", real, "type", typ, "text", e.Text)
		return m.refresh(stageGeometry)
	}
	m = m.write([]cellWrite{{cell: real, value: next}})
	m.log.Debug("edit committed", "cell", real, "type", typ)
	return m.refresh(stageSort)
}

// cancelEdit drops the pending edit without touching the host.
func (m Model) cancelEdit() Model {
	e := m.state.Edit
	if !e.Active() {
		return m
	}
	if e.Cell.FilterRow {
		m.filterSeq++
	}
	m.state.Edit = Edit{}
	return m.refresh(stageGeometry)
}

// toggle flips a boolean cell and commits it immediately.
func (m Model) toggle(c cell.Coord) Model {
	if !m.editable(c) {
		return m
	}
	real, v, typ := m.valueAt(c)
	if typ != host.TypeBoolean {
		return m
	}
	b, _ := v.(bool)
	m = m.write([]cellWrite{{cell: real, value: !b}})
	return m.refresh(stageSort)
}

// clearCells sets every editable selected cell (or the focused cell) to the
// zero value of its type in one prepare/commit pair.
func (m Model) clearCells() Model {
	sel := m.state.Selection
	if sel.Empty() {
		if !m.state.Focus.IsData() {
			return m
		}
		sel = selection.New(cell.Single(m.state.Focus))
	}
	var writes []cellWrite
	for c := range sel.Cells() {
		if !m.editable(c) {
			continue
		}
		real, v, typ := m.valueAt(c)
		writes = append(writes, cellWrite{cell: real, value: host.Zero(typ, v)})
	}
	if len(writes) == 0 {
		return m
	}
	m = m.write(writes)
	return m.refresh(stageSort)
}

// write applies writes through one PrepareDataset/CommitDataset pair.
// Wrapped row heights are measured again since the text may have changed.
func (m Model) write(writes []cellWrite) Model {
	src := m.cfg.Source
	if !src.CanMutate() {
		m.log.Error("host source cannot mutate",
			"prepare", src.PrepareDataset != nil, "set", src.SetCellData != nil, "commit", src.CommitDataset != nil)
	}
	rows := src.Prepare()
	for _, w := range writes {
		src.Set(rows, w.cell, w.value)
	}
	src.Commit(rows)
	m.state = m.state.withoutAutoHeights()
	return m
}

func (m Model) moveAfterEdit(from cell.Coord, adv advance) Model {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	to := from
	switch adv {
	case advanceDown:
		to.Row = min(from.Row+1, rows-1)
	case advanceRight:
		to.Col++
		if to.Col >= cols {
			to.Col = 0
			to.Row = min(from.Row+1, rows-1)
		}
	case advanceLeft:
		to.Col--
		if to.Col < 0 {
			to.Col = cols - 1
			to.Row = max(from.Row-1, 0)
		}
	default:
		return m
	}
	return m.setFocus(to, false)
}

// OpenCustomEdit opens the host editor of the view cell c. ok is false when
// the cell has no host editor or rejects edits.
func (m Model) OpenCustomEdit(c cell.Coord) (Model, bool) {
	if !m.editable(c) {
		return m, false
	}
	real, v, typ := m.valueAt(c)
	ed, ok := m.cfg.Source.Editor(real)
	if !ok {
		return m, false
	}
	m.state.Focus = c
	m.state.Edit = Edit{Mode: EditExplicit, Cell: c, Text: host.Text(typ, v), Custom: true, Editor: ed, Value: v}
	return m.refresh(stageGeometry), true
}

// SetEditValue replaces the pending value of an open host editor.
func (m Model) SetEditValue(v any) Model {
	e := m.state.Edit
	if !e.Custom {
		return m
	}
	e.Value = v
	e.Text = m.formatValue(m.realCell(e.Cell), v)
	m.state.Edit = e
	return m.refresh(stageGeometry)
}

// CloseCustomEdit closes the host editor, committing its pending value
// when confirm is set.
func (m Model) CloseCustomEdit(confirm bool) Model {
	if !m.state.Edit.Custom {
		return m
	}
	if confirm {
		return m.commitEdit(advanceNone)
	}
	return m.cancelEdit()
}

// CommitEdit confirms the pending edit, built-in or host, without moving
// focus.
func (m Model) CommitEdit() Model { return m.commitEdit(advanceNone) }

// CancelEdit drops the pending edit.
func (m Model) CancelEdit() Model { return m.cancelEdit() }

// EditState returns the pending edit.
func (m Model) EditState() Edit { return m.state.Edit }
