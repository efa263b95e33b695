package host

import (
	"github.com/devel0/wscanvas/cell"
)

// Editor is an opaque handle for a host-provided custom cell editor.
type Editor any

// Source is the host data contract. The grid never stores row data; it reads
// values through these callbacks at the moment of use.
//
// Row indices passed to Row, SetCellData and the readonly/type hooks are
// real indices (host order), never view indices.
type Source struct {
	// RowCount returns the current number of host rows. Required.
	RowCount func() int
	// Row returns the row object at a real index. Required.
	Row func(real int) any
	// Cell returns the value of column col in row. Required.
	Cell func(row any, col int) any

	// PrepareDataset returns a mutable copy of the row collection. Changes
	// to the copy must not be visible until CommitDataset.
	PrepareDataset func() []any
	// SetCellData writes value into the copy at the real coordinate c.
	SetCellData func(rows []any, c cell.Coord, value any)
	// CommitDataset replaces the host storage with rows.
	CommitDataset func(rows []any)

	// Optional hooks.
	IsCellReadonly func(c cell.Coord) bool
	CellType       func(c cell.Coord, value any) CellType
	LessThan       func(col int) func(a, b any) bool
	CustomEditor   func(c cell.Coord) (Editor, bool)
}

// Len returns RowCount(). A source without RowCount has no rows.
func (s Source) Len() int {
	if s.RowCount == nil {
		return 0
	}
	return max(s.RowCount(), 0)
}

// Value reads the cell at real row and col.
func (s Source) Value(real, col int) any {
	if s.Row == nil {
		panic(missing("Row"))
	}
	if s.Cell == nil {
		panic(missing("Cell"))
	}
	return s.Cell(s.Row(real), col)
}

// Prepare calls PrepareDataset.
func (s Source) Prepare() []any {
	if s.PrepareDataset == nil {
		panic(missing("PrepareDataset"))
	}
	return s.PrepareDataset()
}

// Set calls SetCellData.
func (s Source) Set(rows []any, c cell.Coord, value any) {
	if s.SetCellData == nil {
		panic(missing("SetCellData"))
	}
	s.SetCellData(rows, c, value)
}

// Commit calls CommitDataset.
func (s Source) Commit(rows []any) {
	if s.CommitDataset == nil {
		panic(missing("CommitDataset"))
	}
	s.CommitDataset(rows)
}

// Readonly reports whether the real cell c rejects edits.
func (s Source) Readonly(c cell.Coord) bool {
	return s.IsCellReadonly != nil && s.IsCellReadonly(c)
}

// TypeOf resolves the cell type of value at real coordinate c, inferring
// it from the Go value when the host has no CellType hook.
func (s Source) TypeOf(c cell.Coord, value any) CellType {
	if s.CellType != nil {
		return s.CellType(c, value)
	}
	return InferType(value)
}

// Less returns the host comparator for col, or nil for the default.
func (s Source) Less(col int) func(a, b any) bool {
	if s.LessThan == nil {
		return nil
	}
	return s.LessThan(col)
}

// Editor returns the custom editor registered for the real cell c.
func (s Source) Editor(c cell.Coord) (Editor, bool) {
	if s.CustomEditor == nil {
		return nil, false
	}
	return s.CustomEditor(c)
}

// CanMutate reports whether all three mutation callbacks are present.
func (s Source) CanMutate() bool {
	return s.PrepareDataset != nil && s.SetCellData != nil && s.CommitDataset != nil
}

// RequireRead panics with a ContractError when Row or Cell is missing.
func (s Source) RequireRead() {
	if s.Row == nil {
		panic(missing("Row"))
	}
	if s.Cell == nil {
		panic(missing("Cell"))
	}
}
