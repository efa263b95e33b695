package grid

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/host/memsource"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m Model, keys ...tea.KeyType) Model {
	for _, k := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: k})
	}
	return m
}

func TestUpdate_ArrowsMoveFocusAndClamp(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	m = press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyRight, tea.KeyRight)
	if got, want := m.FocusedCell(), cell.At(2, 1); got != want {
		t.Fatalf("focus: got %v, want %v", got, want)
	}
	if r, ok := m.Selection().Last(); !ok || r != cell.Single(cell.At(2, 1)) {
		t.Fatalf("selection follows focus: got %v/%v", r, ok)
	}

	m = press(m, tea.KeyHome)
	if got := m.FocusedCell(); got != cell.At(2, 0) {
		t.Fatalf("home: got %v, want %v", got, cell.At(2, 0))
	}
	m = press(m, tea.KeyCtrlHome)
	if got := m.FocusedCell(); got != cell.At(0, 0) {
		t.Fatalf("ctrl+home: got %v, want %v", got, cell.At(0, 0))
	}
	m = press(m, tea.KeyCtrlEnd)
	if got := m.FocusedCell(); got != cell.At(2, 1) {
		t.Fatalf("ctrl+end: got %v, want %v", got, cell.At(2, 1))
	}
}

func TestUpdate_ShiftArrowsExtendFromAnchor(t *testing.T) {
	m, _ := newTestGrid(t, smallRows(), nil)
	m = press(m, tea.KeyShiftDown, tea.KeyShiftDown, tea.KeyShiftRight)

	if got := m.FocusedCell(); got != cell.At(0, 0) {
		t.Fatalf("focus stays at anchor: got %v", got)
	}
	r, _ := m.Selection().Last()
	if want := (cell.Range{From: cell.At(0, 0), To: cell.At(2, 1)}); r != want {
		t.Fatalf("range: got %v, want %v", r, want)
	}
}

func TestUpdate_PageDownScrollsFocusIntoView(t *testing.T) {
	m, _ := newTestGrid(t, manyRows(100), nil)
	page := m.Frame().PageRows
	m = press(m, tea.KeyPgDown, tea.KeyPgDown)
	if got := m.FocusedCell().Row; got != 2*page {
		t.Fatalf("focus row: got %d, want %d", got, 2*page)
	}
	if !m.Frame().RowFullyVisible(2 * page) {
		t.Fatalf("focused row must be on screen, scroll %+v", m.State().Scroll)
	}
}

func TestUpdate_DirectEditCommitsOnEnter(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(runes("z"))
	if e := m.EditState(); e.Mode != EditDirect || e.Text != "z" {
		t.Fatalf("edit: got %+v, want direct %q", e, "z")
	}
	m, _ = m.Update(runes("y"))
	m = press(m, tea.KeyBackspace)
	m, _ = m.Update(runes("q"))
	m = press(m, tea.KeyEnter)

	if got := tbl.Value(0, 0); got != "zq" {
		t.Fatalf("value: got %v, want %q", got, "zq")
	}
	if got := tbl.Commits(); got != 1 {
		t.Fatalf("commits: got %d, want 1", got)
	}
	if got := m.FocusedCell(); got != cell.At(1, 0) {
		t.Fatalf("focus after enter: got %v, want %v", got, cell.At(1, 0))
	}
	if m.EditState().Active() {
		t.Fatalf("edit must be closed")
	}
}

func TestUpdate_EscapeCancels(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(runes("q"))
	m = press(m, tea.KeyEsc)
	if got := tbl.Value(0, 0); got != "b" {
		t.Fatalf("value: got %v, want %q", got, "b")
	}
	if tbl.Commits() != 0 || m.EditState().Active() {
		t.Fatalf("cancel must not commit: commits=%d edit=%+v", tbl.Commits(), m.EditState())
	}
}

func TestUpdate_NumericColumnRejectsText(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m = press(m, tea.KeyRight)
	m, _ = m.Update(runes("x"))
	if m.EditState().Active() {
		t.Fatalf("non-numeric seed must not open an edit")
	}
	m, _ = m.Update(runes("4"))
	m, _ = m.Update(runes("x"))
	m, _ = m.Update(runes("2"))
	if got := m.EditState().Text; got != "42" {
		t.Fatalf("pending text: got %q, want %q", got, "42")
	}
	m = press(m, tea.KeyEnter)
	if got := tbl.Value(0, 1); got != 42 {
		t.Fatalf("value: got %#v, want 42", got)
	}
}

func TestUpdate_TabWrapsToNextRow(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m = press(m, tea.KeyRight)
	m, _ = m.Update(runes("5"))
	m = press(m, tea.KeyTab)
	if got := tbl.Value(0, 1); got != 5 {
		t.Fatalf("value: got %#v, want 5", got)
	}
	if got := m.FocusedCell(); got != cell.At(1, 0) {
		t.Fatalf("focus after tab: got %v, want %v", got, cell.At(1, 0))
	}
}

func TestUpdate_DirectEditArrowCommitsAndMoves(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(runes("k"))
	m = press(m, tea.KeyRight)
	if got := tbl.Value(0, 0); got != "k" {
		t.Fatalf("value: got %v, want %q", got, "k")
	}
	if got := m.FocusedCell(); got != cell.At(0, 1) {
		t.Fatalf("focus: got %v, want %v", got, cell.At(0, 1))
	}
}

func TestUpdate_ExplicitEditLoadsValueAndKeepsArrows(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m = press(m, tea.KeyF2)
	if e := m.EditState(); e.Mode != EditExplicit || e.Text != "b" {
		t.Fatalf("edit: got %+v, want explicit %q", e, "b")
	}
	m = press(m, tea.KeyLeft, tea.KeyDown)
	if !m.EditState().Active() || m.FocusedCell() != cell.At(0, 0) {
		t.Fatalf("arrows must not leave an explicit edit: edit=%+v focus=%v", m.EditState(), m.FocusedCell())
	}
	m, _ = m.Update(runes("x"))
	m = press(m, tea.KeyEnter)
	if got := tbl.Value(0, 0); got != "bx" {
		t.Fatalf("value: got %v, want %q", got, "bx")
	}
}

func TestUpdate_DeleteClearsSelection(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m = press(m, tea.KeyCtrlA, tea.KeyDelete)
	for r := range 3 {
		if tbl.Value(r, 0) != "" || tbl.Value(r, 1) != 0 {
			t.Fatalf("row %d: got %v, want cleared", r, tbl.Row(r))
		}
	}
	if got := tbl.Commits(); got != 1 {
		t.Fatalf("commits: got %d, want 1", got)
	}
}

func TestUpdate_SpaceTogglesBoolean(t *testing.T) {
	tbl := memsource.New([][]any{{true}, {false}})
	cfg := DefaultConfig()
	cfg.Source = tbl.Source()
	cfg.Columns = []Column{{Header: "done"}}
	m := New(cfg).SetSize(20, 5)

	m = press(m, tea.KeySpace)
	if got := tbl.Value(0, 0); got != false {
		t.Fatalf("toggle: got %v, want false", got)
	}
	if m.EditState().Active() {
		t.Fatalf("boolean toggle must not open an edit")
	}
	m = press(m, tea.KeyF2)
	if got := tbl.Value(0, 0); got != true {
		t.Fatalf("f2 on boolean flips: got %v, want true", got)
	}
}

func TestUpdate_ReadOnlyIgnoresMutations(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), func(c *Config) { c.ReadOnly = true })
	m, _ = m.Update(runes("x"))
	m = press(m, tea.KeyF2, tea.KeyDelete)
	m = m.PasteText("p")
	if tbl.Commits() != 0 || m.EditState().Active() {
		t.Fatalf("read-only grid changed: commits=%d edit=%+v", tbl.Commits(), m.EditState())
	}
	m = press(m, tea.KeyDown)
	if got := m.FocusedCell(); got != cell.At(1, 0) {
		t.Fatalf("navigation still works: got %v", got)
	}
}

func TestUpdate_ReadonlyColumnSkipped(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), func(c *Config) { c.Columns[0].Readonly = true })
	m, _ = m.Update(runes("x"))
	if m.EditState().Active() {
		t.Fatalf("readonly column must not open an edit")
	}
	m = press(m, tea.KeyCtrlA, tea.KeyDelete)
	if tbl.Value(0, 0) != "b" || tbl.Value(0, 1) != 0 {
		t.Fatalf("row 0: got %v, want name kept and n cleared", tbl.Row(0))
	}
}

func TestUpdate_CopyAndPasteKeys(t *testing.T) {
	clip := &memClipboard{}
	m, tbl := newTestGrid(t, smallRows(), func(c *Config) { c.Clipboard = clip })
	m = press(m, tea.KeyCtrlA, tea.KeyCtrlC)
	if want := "b\t2\na\t3\nc\t1"; clip.s != want {
		t.Fatalf("copy: got %q, want %q", clip.s, want)
	}

	clip.s = "z"
	m = press(m, tea.KeyCtrlHome, tea.KeyCtrlV)
	if got := tbl.Value(0, 0); got != "z" {
		t.Fatalf("paste: got %v, want %q", got, "z")
	}
}

func TestUpdate_BlurCommitsPendingEdit(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(runes("w"))
	m = m.Blur()
	if got := tbl.Value(0, 0); got != "w" {
		t.Fatalf("value: got %v, want %q", got, "w")
	}
	m, _ = m.Update(runes("v"))
	if m.EditState().Active() {
		t.Fatalf("blurred grid must ignore keys")
	}
}

func TestUpdate_CustomEditorOwnsKeys(t *testing.T) {
	tbl := memsource.New(smallRows())
	tbl.Editors = map[int]host.Editor{0: "picker"}
	m, _ := newTestGrid(t, nil, func(c *Config) { c.Source = tbl.Source() })

	m, _ = m.Update(runes("x"))
	if m.EditState().Active() {
		t.Fatalf("typing must not open a built-in edit on a custom editor cell")
	}
	m = press(m, tea.KeyF2)
	e := m.EditState()
	if !e.Custom || e.Editor != "picker" || e.Value != "b" {
		t.Fatalf("custom edit: got %+v", e)
	}
	m = press(m, tea.KeyEnter, tea.KeyDown)
	if !m.EditState().Custom {
		t.Fatalf("keys must not close a custom edit")
	}
	m = m.SetEditValue("picked")
	m = m.CloseCustomEdit(true)
	if got := tbl.Value(0, 0); got != "picked" {
		t.Fatalf("value: got %v, want %q", got, "picked")
	}

	m, ok := m.OpenCustomEdit(cell.At(1, 0))
	if !ok {
		t.Fatalf("open custom edit: got false")
	}
	m = m.CloseCustomEdit(false)
	if got := tbl.Value(1, 0); got != "a" || m.EditState().Active() {
		t.Fatalf("cancel: value %v edit %+v", got, m.EditState())
	}
}

func TestUpdate_BracketedPastePastes(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p\t7"), Paste: true})
	if tbl.Value(0, 0) != "p" || tbl.Value(0, 1) != 7 {
		t.Fatalf("row 0: got %v", tbl.Row(0))
	}
	if m.EditState().Active() {
		t.Fatalf("paste must not open an edit")
	}
}

func TestCommitEditAndCancelEdit(t *testing.T) {
	m, tbl := newTestGrid(t, smallRows(), nil)
	m, _ = m.Update(runes("z"))
	m = m.CommitEdit()
	if got := tbl.Value(0, 0); got != "z" {
		t.Fatalf("committed value: got %v, want %q", got, "z")
	}
	if m.FocusedCell() != cell.At(0, 0) {
		t.Fatalf("focus moved: got %v", m.FocusedCell())
	}

	m, _ = m.Update(runes("q"))
	m = m.CancelEdit()
	if m.EditState().Active() || tbl.Value(0, 0) != "z" {
		t.Fatalf("cancel: edit=%v value=%v", m.EditState().Mode, tbl.Value(0, 0))
	}
}
