package grid

import (
	"encoding/binary"
	"hash/fnv"
	"reflect"
	"slices"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
)

type SnapshotToken uint64

// RowMap is one rendered row band.
type RowMap struct {
	ScreenY int
	Height  int
	ViewRow int
	RealRow int
	Frozen  bool
	Partial bool
}

// ColMap is one rendered column band.
type ColMap struct {
	ScreenX int
	Width   int
	Col     int
	Frozen  bool
	Partial bool
}

// RenderSnapshot describes the rendered frame for hosts that draw the grid
// themselves or cache View output. Token changes whenever anything that
// affects the frame changes.
type RenderSnapshot struct {
	Token   SnapshotToken
	GridID  string
	Version uint64

	Width  int
	Height int
	Scroll geometry.Offset

	Content geometry.Rect
	VBar    geometry.Scrollbar
	HBar    geometry.Scrollbar

	Rows []RowMap
	Cols []ColMap
}

type snapshotSignature struct {
	id        string
	version   uint64
	width     int
	height    int
	scroll    geometry.Offset
	focused   bool
	focus     cell.Coord
	editMode  EditMode
	editText  string
	filtered  int
	cellStyle uintptr
	cellSet   bool
}

func providerPtr(v any) uintptr {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Chan:
		return rv.Pointer()
	default:
		return 0
	}
}

func (m Model) currentSnapshotSignature() snapshotSignature {
	return snapshotSignature{
		id:        m.id,
		version:   m.state.Version,
		width:     m.width,
		height:    m.height,
		scroll:    m.state.Scroll,
		focused:   m.focused,
		focus:     m.state.Focus,
		editMode:  m.state.Edit.Mode,
		editText:  m.state.Edit.Text,
		filtered:  m.state.FilteredCount,
		cellStyle: providerPtr(m.cfg.CellStyle),
		cellSet:   m.cfg.CellStyle != nil,
	}
}

func hashSnapshotSignature(sig snapshotSignature) SnapshotToken {
	h := fnv.New64a()
	writeU64 := func(v uint64) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		_, _ = h.Write(b[:])
	}
	writeI := func(v int) { writeU64(uint64(v)) }
	writeB := func(v bool) {
		if v {
			writeU64(1)
			return
		}
		writeU64(0)
	}
	writeS := func(v string) {
		writeU64(uint64(len(v)))
		_, _ = h.Write([]byte(v))
	}

	writeS(sig.id)
	writeU64(sig.version)
	writeI(sig.width)
	writeI(sig.height)
	writeI(sig.scroll.Row)
	writeI(sig.scroll.Col)
	writeB(sig.focused)
	writeI(sig.focus.Row)
	writeI(sig.focus.Col)
	writeB(sig.focus.FilterRow)
	writeI(int(sig.editMode))
	writeS(sig.editText)
	writeI(sig.filtered)
	writeU64(uint64(sig.cellStyle))
	writeB(sig.cellSet)

	tok := SnapshotToken(h.Sum64())
	if tok == 0 {
		return 1
	}
	return tok
}

func (m Model) buildRenderSnapshot(token SnapshotToken) RenderSnapshot {
	f := m.frame
	s := RenderSnapshot{
		Token:   token,
		GridID:  m.id,
		Version: m.state.Version,
		Width:   m.width,
		Height:  m.height,
		Scroll:  f.Scroll,
		Content: f.Content,
		VBar:    f.VBar,
		HBar:    f.HBar,
	}
	if len(f.Rows) > 0 {
		s.Rows = make([]RowMap, 0, len(f.Rows))
		for _, r := range f.Rows {
			s.Rows = append(s.Rows, RowMap{
				ScreenY: r.Pos,
				Height:  r.Size,
				ViewRow: r.Index,
				RealRow: m.view.ViewToReal(r.Index),
				Frozen:  r.Frozen,
				Partial: r.Partial,
			})
		}
	}
	if len(f.Cols) > 0 {
		s.Cols = make([]ColMap, 0, len(f.Cols))
		for _, c := range f.Cols {
			s.Cols = append(s.Cols, ColMap{ScreenX: c.Pos, Width: c.Size, Col: c.Index, Frozen: c.Frozen, Partial: c.Partial})
		}
	}
	return s
}

// RenderSnapshot returns a detached description of the current frame.
func (m Model) RenderSnapshot() RenderSnapshot {
	return m.buildRenderSnapshot(hashSnapshotSignature(m.currentSnapshotSignature()))
}

// SnapshotCurrent reports whether s still describes the current frame.
func (m Model) SnapshotCurrent(s RenderSnapshot) bool {
	if s.Token == 0 {
		return false
	}
	return s.Token == hashSnapshotSignature(m.currentSnapshotSignature())
}

// CellAtWithSnapshot maps a screen position to a cell, provided s is
// current.
func (m Model) CellAtWithSnapshot(s RenderSnapshot, x, y int) (cell.Coord, bool) {
	if !m.SnapshotCurrent(s) {
		return cell.Coord{}, false
	}
	return m.frame.CellAt(x, y)
}

// Row returns the row band of view row v in s.
func (s RenderSnapshot) Row(v int) (RowMap, bool) {
	i := slices.IndexFunc(s.Rows, func(r RowMap) bool { return r.ViewRow == v })
	if i < 0 {
		return RowMap{}, false
	}
	return s.Rows[i], true
}
