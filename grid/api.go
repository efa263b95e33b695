package grid

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/clipboard"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/selection"
	"github.com/devel0/wscanvas/sortfilter"
)

// SetSize sets the viewport size in terminal cells.
func (m Model) SetSize(width, height int) Model {
	width, height = max(width, 0), max(height, 0)
	if width == m.width && height == m.height {
		return m
	}
	m.width, m.height = width, height
	return m.refresh(stageGeometry)
}

func (m Model) Width() int  { return m.width }
func (m Model) Height() int { return m.height }

// State returns the current interaction state.
func (m Model) State() State { return m.state }

// Frame returns the last computed viewport.
func (m Model) Frame() geometry.Frame { return m.frame }

// FocusedCell returns the focused cell in view space.
func (m Model) FocusedCell() cell.Coord { return m.state.Focus }

// FocusCell focuses the view cell c and scrolls it into view. A filter band
// cell focuses that column's filter.
func (m Model) FocusCell(c cell.Coord) Model {
	if c.IsFilterCell() {
		if !m.cfg.ShowFilterRow || c.Col >= len(m.cfg.Columns) {
			return m
		}
		m.state.Focus = c
		return m.refresh(stageGeometry)
	}
	return m.moveTo(c)
}

// ScrollTo sets the scroll offset, clamped into range.
func (m Model) ScrollTo(o geometry.Offset) Model {
	m.state.Scroll = m.frame.ClampScroll(o)
	return m.refresh(stageGeometry)
}

// Selection returns the selection in view space.
func (m Model) Selection() selection.Selection { return m.state.Selection }

// SetSelection replaces the selection (view space). Ranges are clamped to
// the grid.
func (m Model) SetSelection(s selection.Selection) Model {
	m.state.Selection = s
	if last, ok := s.Last(); ok {
		m.state.Focus = cell.Clamp(last.From, m.state.FilteredCount, len(m.cfg.Columns))
	}
	return m.refresh(stageGeometry)
}

// ClearSelection drops every range.
func (m Model) ClearSelection() Model {
	m.state.Selection = m.state.Selection.Clear()
	return m.refresh(stageGeometry)
}

// RealSelection returns the selection translated to real rows. A view
// range becomes one range per run of consecutive real rows.
func (m Model) RealSelection() selection.Selection {
	var out []cell.Range
	for _, r := range m.state.Selection.Ranges() {
		b := r.Bounds()
		out = appendRuns(out, b, func(v int) (int, bool) {
			if v < 0 || v >= m.state.FilteredCount {
				return 0, false
			}
			return m.view.ViewToReal(v), true
		})
	}
	return selection.New(out...)
}

// SetRealSelection selects real-space ranges. Rows hidden by filtering are
// dropped.
func (m Model) SetRealSelection(s selection.Selection) Model {
	var out []cell.Range
	for _, r := range s.Ranges() {
		out = appendRuns(out, r.Bounds(), m.view.Lookup)
	}
	return m.SetSelection(selection.New(out...))
}

// appendRuns maps each row of b through conv and appends one range per run
// of consecutive results.
func appendRuns(out []cell.Range, b cell.Bounds, conv func(int) (int, bool)) []cell.Range {
	start, prev := -1, -1
	flush := func() {
		if start >= 0 {
			out = append(out, cell.Range{From: cell.At(start, b.MinCol), To: cell.At(prev, b.MaxCol)})
		}
		start, prev = -1, -1
	}
	for row := b.MinRow; row <= b.MaxRow; row++ {
		r, ok := conv(row)
		if !ok {
			flush()
			continue
		}
		if start >= 0 && r == prev+1 {
			prev = r
			continue
		}
		flush()
		start, prev = r, r
	}
	flush()
	return out
}

// Sorting returns the active sorts.
func (m Model) Sorting() []sortfilter.ColumnSortInfo { return slices.Clone(m.state.Sorts) }

// SetSorting replaces the sorts and re-runs the pipeline.
func (m Model) SetSorting(sorts []sortfilter.ColumnSortInfo) Model {
	m.state = m.state.withSorts(slices.Clone(sorts))
	m.log.Debug("sorting set", "sorts", len(sorts))
	return m.refresh(stageSort)
}

// Filters returns the filter texts.
func (m Model) Filters() []sortfilter.Filter { return slices.Clone(m.state.Filters) }

// SetFilter sets the filter text of col and applies it immediately. A
// pending debounced filter edit is superseded.
func (m Model) SetFilter(col int, text string) Model {
	if col < 0 || col >= len(m.cfg.Columns) {
		return m
	}
	m.filterSeq++
	if e := m.state.Edit; e.Cell.FilterRow && e.Cell.Col == col {
		m.state.Edit = Edit{}
	}
	m.state = m.state.withFilters(sortfilter.WithFilter(m.state.Filters, col, text))
	return m.refresh(stageSort)
}

// CopySelectionToClipboard renders the bounding box of the selection (or
// the focused cell) as clipboard text, hands it to Config.Clipboard and
// returns it. Cells inside the box but outside every range copy as empty.
func (m Model) CopySelectionToClipboard() string {
	sel := m.state.Selection
	if sel.Empty() && m.state.Focus.IsData() {
		sel = selection.New(cell.Single(m.state.Focus))
	}
	b, ok := sel.Bounds()
	if !ok || m.state.FilteredCount == 0 {
		return ""
	}
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	b = cell.ClampRange(b.Range(), rows, cols).Bounds()
	// Gaps between ranges copy as empty unless one range spans the sheet.
	full := sel.Len() == 1 && sel.IsFullWorksheet(rows, cols)

	out := make([][]string, 0, b.Rows())
	for v := b.MinRow; v <= b.MaxRow; v++ {
		real := m.view.ViewToReal(v)
		line := make([]string, 0, b.Cols())
		for col := b.MinCol; col <= b.MaxCol; col++ {
			if !full && !sel.ContainsCell(cell.At(v, col), selection.ModeCell) {
				line = append(line, "")
				continue
			}
			line = append(line, m.copyText(real, col))
		}
		out = append(out, line)
	}
	return m.toClipboard(clipboard.Encode(out))
}

// CopyWorksheetToClipboard copies every visible row and column.
func (m Model) CopyWorksheetToClipboard() string {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	out := make([][]string, 0, rows)
	for v := range rows {
		real := m.view.ViewToReal(v)
		line := make([]string, cols)
		for col := range cols {
			line[col] = m.copyText(real, col)
		}
		out = append(out, line)
	}
	return m.toClipboard(clipboard.Encode(out))
}

// copyText is the display text with the codec's separators flattened.
func (m Model) copyText(real, col int) string {
	s := m.displayText(real, col)
	if strings.ContainsAny(s, "\t\r\n") {
		s = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	}
	return s
}

func (m Model) toClipboard(text string) string {
	if m.cfg.Clipboard == nil {
		return text
	}
	if err := m.cfg.Clipboard.WriteText(text); err != nil {
		m.log.Debug("clipboard write failed", "err", err)
	}
	return text
}

// PasteText parses clipboard text and writes it in one prepare/commit
// pair. A multi-cell selection is filled by tiling the block over each
// range; otherwise the block is written at the focus, clipped to the grid.
// Readonly cells and values that do not parse are skipped.
func (m Model) PasteText(text string) Model {
	block := clipboard.Parse(text)
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	if block.Empty() || rows == 0 || cols == 0 || m.cfg.ReadOnly {
		return m
	}

	var targets []cell.Bounds
	sel := m.state.Selection
	if b, ok := sel.Bounds(); ok && b.Size() > 1 {
		for _, r := range sel.Ranges() {
			targets = append(targets, cell.ClampRange(r, rows, cols).Bounds())
		}
	} else {
		f := m.state.Focus
		if !f.IsData() {
			return m
		}
		to := cell.Clamp(cell.At(f.Row+block.Rows()-1, f.Col+block.Cols()-1), rows, cols)
		r := cell.Range{From: f, To: to}
		targets = append(targets, r.Bounds())
		m.state.Selection = selection.New(r)
	}

	var writes []cellWrite
	for _, b := range targets {
		for v := b.MinRow; v <= b.MaxRow; v++ {
			for col := b.MinCol; col <= b.MaxCol; col++ {
				c := cell.At(v, col)
				if !m.editable(c) {
					continue
				}
				real, prev, typ := m.valueAt(c)
				next, ok := host.Parse(typ, block.At(v-b.MinRow, col-b.MinCol), prev)
				if !ok {
					continue
				}
				writes = append(writes, cellWrite{cell: real, value: next})
			}
		}
	}
	if len(writes) == 0 {
		return m.refresh(stageGeometry)
	}
	m = m.write(writes)
	m.log.Debug("paste", "cells", len(writes), "rows", block.Rows(), "cols", block.Cols())
	return m.refresh(stageSort)
}

// ResetView drops sorts, filters, selection, size overrides and the
// pending edit, then re-runs the pipeline from the data.
func (m Model) ResetView() Model {
	m.filterSeq++
	m.heightSeq++
	m.state = State{Version: m.state.Version}
	return m.refresh(stageSort)
}

// DataChanged tells the grid that the host storage changed outside the
// grid. Sorts and filters are re-applied and wrapped row heights are
// measured again.
func (m Model) DataChanged() Model {
	first := !m.state.Initialized
	m.state = m.state.withoutAutoHeights()
	m = m.refresh(stageSort)
	if first && m.state.Initialized && !m.state.Focus.IsFilterCell() {
		m = m.setFocus(cell.At(0, 0), false).refresh(stageGeometry)
	}
	return m
}

// ViewRowToRealRow maps a view row to the host row it shows.
func (m Model) ViewRowToRealRow(v int) int { return m.view.ViewToReal(v) }

// RealRowToViewRow maps a host row to its view row. ok is false when the
// row is filtered out.
func (m Model) RealRowToViewRow(r int) (int, bool) { return m.view.Lookup(r) }

// ViewColToRealCol maps a view column to a host column. Columns are never
// reordered, so the mapping is the identity.
func (m Model) ViewColToRealCol(c int) int { return c }

// RealColToViewCol is the inverse of ViewColToRealCol.
func (m Model) RealColToViewCol(c int) int { return c }

// CellToCanvasCoord returns the screen rectangle of the view cell c.
func (m Model) CellToCanvasCoord(c cell.Coord) (geometry.Rect, bool) { return m.frame.CellRect(c) }

// CanvasCoordToCellCoord maps a grid-relative screen position to a cell.
func (m Model) CanvasCoordToCellCoord(x, y int) (cell.Coord, bool) { return m.frame.CellAt(x, y) }

// SetColumnWidth overrides the width of col (minimum 1). Row heights of
// wrapped columns are measured again after RowHeightDebounce.
func (m Model) SetColumnWidth(col, width int) (Model, tea.Cmd) {
	if col < 0 || col >= len(m.cfg.Columns) {
		return m, nil
	}
	width = max(width, 1)
	if m.ColumnWidth(col) == width {
		return m, nil
	}
	m.state = m.state.withColWidth(col, width)
	m = m.refresh(stageGeometry)
	if !m.cfg.Columns[col].Wrap {
		return m, nil
	}
	return m.scheduleRowHeights()
}

// SetRowHeight overrides the height of view row v. A height <= 0 restores
// the default.
func (m Model) SetRowHeight(v, height int) Model {
	if v < 0 || v >= m.state.FilteredCount {
		return m
	}
	m.state = m.state.withRowHeight(m.view.ViewToReal(v), height)
	return m.refresh(stageGeometry)
}
