package grid

import (
	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/internal/textwidth"
	"github.com/devel0/wscanvas/sortfilter"
)

// stage is the first pipeline step a transition needs.
type stage uint8

const (
	// stageSort follows data, filter and sort changes.
	stageSort stage = iota
	// stageGeometry follows size, scroll, focus and width changes. The
	// view map only depends on data, filters and sorts, so it is reused.
	stageGeometry
)

func (s stage) String() string {
	if s == stageSort {
		return "sort"
	}
	return "geometry"
}

// refresh runs the pipeline from the given stage, bumps the state version
// and notifies the host.
func (m Model) refresh(from stage) Model {
	m = m.run(from)
	m.state.Version++
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.id, m.state))
	}
	return m
}

// run is the ordered pipeline: sort/filter, geometry, clamp.
func (m Model) run(from stage) Model {
	start := m.now()

	if from == stageSort {
		n := m.cfg.Source.Len()
		res := m.engine.Run(sortfilter.Input{
			Source:     m.cfg.Source,
			Filters:    m.state.Filters,
			Sorts:      m.state.Sorts,
			Predicates: m.preds,
			Text:       m.filterText,
		})
		m.view = res.View
		m.state.FilteredCount = res.FilteredCount
		if res.Sorted {
			// Host rows moved: manual heights follow their rows, wrapped
			// heights are measured again.
			m.state = m.state.withoutAutoHeights().withMovedRows(res.Moved)
		}
		if n > 0 {
			m.state.Initialized = true
		}
		m.log.Debug("sort/filter", "rows", n, "filtered", res.FilteredCount, "sorted", res.Sorted)
	}

	m.frame = geometry.Compute(m.layout())
	if heights := m.measureRows(); len(heights) > 0 {
		m.state = m.state.withAutoHeights(heights)
		m.frame = geometry.Compute(m.layout())
	}

	m = m.clamp()
	m.log.Debug("pipeline", "stage", from, "filtered", m.state.FilteredCount,
		"visible", m.frame.VisibleRows, "elapsed", m.now().Sub(start))
	return m
}

func (m Model) clamp() Model {
	rows, cols := m.state.FilteredCount, len(m.cfg.Columns)
	s := m.state

	if s.Focus.IsData() {
		s.Focus = cell.Clamp(s.Focus, rows, cols)
	}
	s.Selection = s.Selection.Clamp(rows, cols)

	if e := s.Edit; e.Active() && !e.Cell.FilterRow {
		if rows == 0 || e.Cell.Row >= rows || e.Cell.Col >= cols {
			m.log.Debug("edit dropped", "cell", e.Cell)
			s.Edit = Edit{}
		}
	}

	s.Scroll = m.frame.Scroll
	s.VisibleRows = m.frame.VisibleRows
	s.VisibleCols = m.frame.VisibleCols
	s.VBar = m.frame.VBar
	s.HBar = m.frame.HBar
	m.state = s
	return m
}

func (m Model) layout() geometry.Layout {
	header := 1
	if m.cfg.HideHeader {
		header = 0
	}
	filter := 0
	if m.cfg.ShowFilterRow {
		filter = 1
	}
	return geometry.Layout{
		Width:         m.width,
		Height:        m.height,
		Rows:          m.state.FilteredCount,
		Cols:          len(m.cfg.Columns),
		FrozenRows:    m.cfg.FrozenRows,
		FrozenCols:    m.cfg.FrozenCols,
		RowHeight:     m.cfg.RowHeight,
		ColWidth:      m.cfg.ColWidth,
		RowSeparator:  m.cfg.RowSeparator,
		ColSeparator:  m.cfg.ColSeparator,
		RowHeights:    m.state.RowHeights,
		View:          m.view,
		ColWidths:     m.colWidths(),
		GutterWidth:   m.gutterWidth(),
		HeaderHeight:  header,
		FilterHeight:  filter,
		PartialRows:   m.cfg.PartialRows,
		PartialCols:   m.cfg.PartialCols,
		Scroll:        m.state.Scroll,
		VScroll:       m.cfg.VScroll,
		HScroll:       m.cfg.HScroll,
		ScrollbarSize: m.cfg.ScrollbarSize,
		MinHandle:     m.cfg.MinHandle,
	}
}

func (m Model) colWidths() map[int]int {
	out := make(map[int]int, len(m.cfg.Columns)+len(m.state.ColWidths))
	for i, c := range m.cfg.Columns {
		if c.Width > 0 {
			out[i] = c.Width
		}
	}
	for i, w := range m.state.ColWidths {
		out[i] = w
	}
	return out
}

// ColumnWidth returns the current width of col.
func (m Model) ColumnWidth(col int) int {
	if w, ok := m.state.ColWidths[col]; ok && w > 0 {
		return w
	}
	if col >= 0 && col < len(m.cfg.Columns) && m.cfg.Columns[col].Width > 0 {
		return m.cfg.Columns[col].Width
	}
	return m.cfg.ColWidth
}

func (m Model) gutterWidth() int {
	if m.cfg.HideRowNumbers {
		return 0
	}
	return digits(max(m.state.FilteredCount, 1)) + 1
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// measureRows computes heights for visible rows of wrapped columns that
// have none yet.
func (m Model) measureRows() map[int]int {
	var wrapCols []int
	for i, c := range m.cfg.Columns {
		if c.Wrap {
			wrapCols = append(wrapCols, i)
		}
	}
	if len(wrapCols) == 0 || m.state.FilteredCount == 0 {
		return nil
	}

	var out map[int]int
	for _, s := range m.frame.Rows {
		real := m.view.ViewToReal(s.Index)
		if _, ok := m.state.RowHeights[real]; ok {
			continue
		}
		lines := 1
		for _, col := range wrapCols {
			lines = max(lines, textwidth.WrapLines(m.displayText(real, col), m.ColumnWidth(col)))
		}
		if out == nil {
			out = map[int]int{}
		}
		out[real] = min(lines*m.cfg.RowHeight, m.cfg.MaxRowHeight)
	}
	return out
}

// cellType resolves the type of the real cell c holding v.
func (m Model) cellType(c cell.Coord, v any) host.CellType {
	return m.cfg.Source.TypeOf(c, v)
}

// displayText renders the real cell (real, col).
func (m Model) displayText(real, col int) string {
	v := m.cfg.Source.Value(real, col)
	return m.formatValue(cell.At(real, col), v)
}

func (m Model) formatValue(c cell.Coord, v any) string {
	if c.Col >= 0 && c.Col < len(m.cfg.Columns) {
		if f := m.cfg.Columns[c.Col].Format; f != nil {
			return f(v)
		}
	}
	return host.Text(m.cellType(c, v), v)
}

func (m Model) filterText(c cell.Coord, v any) string { return m.formatValue(c, v) }

// realCell converts a view data cell to real space.
func (m Model) realCell(c cell.Coord) cell.Coord {
	return cell.At(m.view.ViewToReal(c.Row), c.Col)
}

// readonly reports whether the view data cell c rejects edits.
func (m Model) readonly(c cell.Coord) bool {
	if m.cfg.ReadOnly {
		return true
	}
	if c.Col >= 0 && c.Col < len(m.cfg.Columns) && m.cfg.Columns[c.Col].Readonly {
		return true
	}
	return m.cfg.Source.Readonly(m.realCell(c))
}
