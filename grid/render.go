package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/internal/textwidth"
	"github.com/devel0/wscanvas/selection"
	"github.com/devel0/wscanvas/sortfilter"
)

const (
	glyphColSep    = "│"
	glyphRowSep    = "─"
	glyphTrack     = "│"
	glyphHandle    = "┃"
	glyphHTrack    = "─"
	glyphHHandle   = "━"
	glyphAsc       = "▲"
	glyphDesc      = "▼"
	glyphCaret     = "▏"
	glyphFilterRow = "≡"
)

// render draws the grid with lipgloss. Hosts with their own renderer use
// RenderSnapshot and the coordinate conversions instead.
func (m Model) render() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	f := m.frame
	l := f.Layout
	lines := make([]string, 0, m.height)

	if l.HeaderHeight > 0 {
		lines = append(lines, m.renderHeader())
	}
	if l.FilterHeight > 0 {
		lines = append(lines, m.renderFilterRow())
	}

	for _, rs := range f.Rows {
		lines = append(lines, m.renderRow(rs)...)
		if rs.Partial || l.RowSeparator == 0 {
			continue
		}
		for range l.RowSeparator {
			if len(lines) >= f.Content.Y+f.Content.H {
				break
			}
			lines = append(lines, m.renderRowSeparator(len(lines)))
		}
	}
	for len(lines) < f.Content.Y+f.Content.H {
		lines = append(lines, m.frameLine(len(lines), strings.Repeat(" ", l.GutterWidth), strings.Repeat(" ", f.Content.W)))
	}
	if f.HBar.Visible {
		for range f.HBar.Track.H {
			lines = append(lines, m.renderHBar())
		}
	}
	for len(lines) < m.height {
		lines = append(lines, strings.Repeat(" ", m.width))
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}

	out := lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(lines, "\n"))
	if popup, x, y, ok := m.renderEditPopup(); ok {
		out = overlay.Composite(popup, out, overlay.Left, overlay.Top, x, y)
	}
	return out
}

// frameLine joins the gutter, the content part and the vertical bar cell of
// screen line y.
func (m Model) frameLine(y int, gutter, content string) string {
	var sb strings.Builder
	sb.WriteString(gutter)
	sb.WriteString(content)
	sb.WriteString(m.vbarCell(y))
	return sb.String()
}

func (m Model) vbarCell(y int) string {
	b := m.frame.VBar
	if !b.Visible {
		return ""
	}
	st := m.cfg.Style
	if y < b.Track.Y || y >= b.Track.Y+b.Track.H {
		return strings.Repeat(" ", b.Track.W)
	}
	if y >= b.Handle.Y && y < b.Handle.Y+b.Handle.H {
		return st.ScrollHandle.Render(strings.Repeat(glyphHandle, b.Track.W))
	}
	return st.ScrollTrack.Render(strings.Repeat(glyphTrack, b.Track.W))
}

// contentLine renders the column spans of one screen line. cellText
// returns the styled text of a span, exactly span.Size cells wide.
func (m Model) contentLine(cellText func(cs geometry.Span) string) string {
	f := m.frame
	end := f.Content.X + f.Content.W
	x := f.Content.X
	var sb strings.Builder
	for _, cs := range f.Cols {
		sb.WriteString(cellText(cs))
		x = cs.End()
		if cs.Partial {
			continue
		}
		if n := min(f.Layout.ColSeparator, end-x); n > 0 {
			sb.WriteString(m.cfg.Style.Separator.Render(strings.Repeat(glyphColSep, n)))
			x += n
		}
	}
	if x < end {
		sb.WriteString(strings.Repeat(" ", end-x))
	}
	return sb.String()
}

func (m Model) renderHeader() string {
	st := m.cfg.Style
	gutter := st.RowNumber.Render(strings.Repeat(" ", m.frame.Layout.GutterWidth))
	active := sortfilter.ApplicationOrder(m.state.Sorts)
	content := m.contentLine(func(cs geometry.Span) string {
		col := m.cfg.Columns[cs.Index]
		text := col.Header
		style := st.Header
		if dir := sortfilter.DirectionOf(m.state.Sorts, cs.Index); dir != sortfilter.None {
			mark := glyphAsc
			if dir == sortfilter.Descending {
				mark = glyphDesc
			}
			if len(active) > 1 {
				mark += strconv.Itoa(sortOrderOf(m.state.Sorts, cs.Index) + 1)
			}
			text = textwidth.Fit(text, max(cs.Size-textwidth.Width(mark)-1, 0), false) + " " + mark
			style = st.HeaderSorted
		}
		return style.Render(textwidth.Fit(text, cs.Size, false))
	})
	return m.frameLine(0, gutter, content)
}

func sortOrderOf(sorts []sortfilter.ColumnSortInfo, col int) int {
	for _, s := range sorts {
		if s.ColumnIndex == col {
			return s.SortOrder
		}
	}
	return 0
}

func (m Model) renderFilterRow() string {
	st := m.cfg.Style
	y := m.frame.Layout.HeaderHeight
	gutter := st.RowNumber.Render(textwidth.Fit(glyphFilterRow, m.frame.Layout.GutterWidth, true))
	e := m.state.Edit
	content := m.contentLine(func(cs geometry.Span) string {
		c := cell.Coord{Row: cell.Gutter, Col: cs.Index, FilterRow: true}
		text := sortfilter.FilterText(m.state.Filters, cs.Index)
		style := st.Filter
		if text != "" {
			style = st.FilterActive
		}
		if e.Active() && e.Cell == c {
			return st.Editing.Inherit(style).Render(m.editText(e.Text, cs.Size))
		}
		if m.focused && m.state.Focus == c {
			style = st.Focus.Inherit(style)
		}
		return style.Render(textwidth.Fit(text, cs.Size, false))
	})
	return m.frameLine(y, gutter, content)
}

func (m Model) renderRowSeparator(y int) string {
	st := m.cfg.Style
	gutter := strings.Repeat(" ", m.frame.Layout.GutterWidth)
	content := st.Separator.Render(strings.Repeat(glyphRowSep, m.frame.Content.W))
	return m.frameLine(y, gutter, content)
}

// renderRow renders every screen line of row span rs.
func (m Model) renderRow(rs geometry.Span) []string {
	st := m.cfg.Style
	real := m.view.ViewToReal(rs.Index)
	gw := m.frame.Layout.GutterWidth

	cells := make(map[int]cellLines, len(m.frame.Cols))
	for _, cs := range m.frame.Cols {
		cells[cs.Index] = m.cellContent(rs.Index, real, cs)
	}

	out := make([]string, 0, rs.Size)
	for i := range rs.Size {
		gutter := strings.Repeat(" ", gw)
		if i == 0 && gw > 0 {
			gutter = st.RowNumber.Render(textwidth.Fit(strconv.Itoa(rs.Index+1), gw-1, true) + " ")
		}
		content := m.contentLine(func(cs geometry.Span) string {
			cl := cells[cs.Index]
			text := ""
			if i < len(cl.lines) {
				text = cl.lines[i]
			}
			return cl.style.Render(textwidth.Fit(text, cs.Size, cl.right))
		})
		out = append(out, m.frameLine(rs.Pos+i, gutter, content))
	}
	return out
}

type cellLines struct {
	lines []string
	style lipgloss.Style
	right bool
}

// cellContent resolves the text lines and style of the view cell
// (row, cs.Index).
func (m Model) cellContent(row, real int, cs geometry.Span) cellLines {
	st := m.cfg.Style
	c := cell.At(row, cs.Index)
	col := m.cfg.Columns[cs.Index]
	rc := cell.At(real, cs.Index)
	v := m.cfg.Source.Value(real, cs.Index)
	typ := m.cellType(rc, v)
	text := m.formatValue(rc, v)

	style := st.Cell
	if m.readonly(c) {
		style = st.Readonly.Inherit(style)
	}
	if m.cfg.CellStyle != nil {
		if s, ok := m.cfg.CellStyle(rc, v); ok {
			style = s.Inherit(style)
		}
	}
	if m.state.Selection.ContainsCell(c, selection.ModeCell) {
		style = st.Selection.Inherit(style)
	}
	if m.focused && m.state.Focus == c {
		style = st.Focus.Inherit(style)
	}

	right := col.Align == AlignRight || (col.Align == AlignAuto && typ == host.TypeNumber)
	if e := m.state.Edit; e.Active() && e.Cell == c {
		return cellLines{lines: []string{m.editText(e.Text, cs.Size)}, style: st.Editing.Inherit(style)}
	}

	var lines []string
	if col.Wrap {
		lines = textwidth.Wrap(text, m.ColumnWidth(cs.Index))
	} else {
		lines = []string{text}
	}
	return cellLines{lines: lines, style: style, right: right}
}

// editText shows the tail of the pending text followed by a caret.
func (m Model) editText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	s := text + glyphCaret
	for textwidth.Width(s) > width {
		parts := textwidth.Split(s)
		s = strings.Join(parts[1:], "")
	}
	return s
}

func (m Model) renderHBar() string {
	f := m.frame
	b := f.HBar
	st := m.cfg.Style
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", f.Layout.GutterWidth))
	for x := b.Track.X; x < b.Track.X+b.Track.W; x++ {
		if x >= b.Handle.X && x < b.Handle.X+b.Handle.W {
			sb.WriteString(st.ScrollHandle.Render(glyphHHandle))
		} else {
			sb.WriteString(st.ScrollTrack.Render(glyphHTrack))
		}
	}
	if f.VBar.Visible {
		sb.WriteString(strings.Repeat(" ", f.VBar.Track.W))
	}
	return sb.String()
}

// renderEditPopup draws an explicit built-in edit as a bordered box over
// the edited cell.
func (m Model) renderEditPopup() (string, int, int, bool) {
	e := m.state.Edit
	if e.Mode != EditExplicit || e.Custom || e.Cell.FilterRow {
		return "", 0, 0, false
	}
	r, ok := m.frame.CellRect(e.Cell)
	if !ok {
		return "", 0, 0, false
	}
	st := m.cfg.Style.EditPopup
	frameW := st.GetHorizontalFrameSize()
	frameH := st.GetVerticalFrameSize()
	inner := min(max(r.W, textwidth.Width(e.Text)+1), max(m.width-frameW, 1))
	box := st.Render(textwidth.Fit(m.editText(e.Text, inner), inner, false))

	w, h := inner+frameW, 1+frameH
	x := min(max(r.X-st.GetBorderLeftSize(), 0), max(m.width-w, 0))
	y := min(max(r.Y-st.GetBorderTopSize(), 0), max(m.height-h, 0))
	return box, x, y, true
}

// String renders a one-line summary of the grid for logs.
func (m Model) String() string {
	return fmt.Sprintf("grid %s %dx%d rows=%d/%d scroll=%d,%d focus=%v",
		m.id, m.width, m.height, m.state.FilteredCount, m.cfg.Source.Len(),
		m.state.Scroll.Row, m.state.Scroll.Col, m.state.Focus)
}
