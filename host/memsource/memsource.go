// Package memsource is an in-memory host.Source over [][]any rows.
package memsource

import (
	"slices"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
)

// Table stores rows as []any values. Each committed row is treated as
// immutable: SetCellData copies the row before writing, so a prepared
// dataset never leaks into storage before CommitDataset.
type Table struct {
	rows []any

	// Types optionally fixes the cell type per column.
	Types []host.CellType
	// ReadonlyCols marks whole columns as readonly.
	ReadonlyCols map[int]bool
	// Editors registers custom editors per column.
	Editors map[int]host.Editor

	commits int
}

// New copies rows into a Table.
func New(rows [][]any) *Table {
	t := &Table{rows: make([]any, len(rows))}
	for i, r := range rows {
		t.rows[i] = slices.Clone(r)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns a copy of the row at real index i.
func (t *Table) Row(i int) []any {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return slices.Clone(t.rows[i].([]any))
}

// Value returns the stored value at (i, col).
func (t *Table) Value(i, col int) any {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return cellOf(t.rows[i], col)
}

// Append adds rows at the end of the table.
func (t *Table) Append(rows ...[]any) {
	for _, r := range rows {
		t.rows = append(t.rows, slices.Clone(r))
	}
}

// Commits counts CommitDataset calls.
func (t *Table) Commits() int { return t.commits }

func cellOf(row any, col int) any {
	r, _ := row.([]any)
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// Source exposes the table through the host contract.
func (t *Table) Source() host.Source {
	return host.Source{
		RowCount: func() int { return len(t.rows) },
		Row: func(i int) any {
			if i < 0 || i >= len(t.rows) {
				return nil
			}
			return t.rows[i]
		},
		Cell:           cellOf,
		PrepareDataset: func() []any { return slices.Clone(t.rows) },
		SetCellData: func(rows []any, c cell.Coord, v any) {
			if c.Row < 0 || c.Row >= len(rows) {
				return
			}
			r, _ := rows[c.Row].([]any)
			if c.Col < 0 {
				return
			}
			next := slices.Clone(r)
			if c.Col >= len(next) {
				next = append(next, make([]any, c.Col-len(next)+1)...)
			}
			next[c.Col] = v
			rows[c.Row] = next
		},
		CommitDataset: func(rows []any) {
			t.rows = rows
			t.commits++
		},
		IsCellReadonly: func(c cell.Coord) bool { return t.ReadonlyCols[c.Col] },
		CellType: func(c cell.Coord, v any) host.CellType {
			if c.Col >= 0 && c.Col < len(t.Types) {
				return t.Types[c.Col]
			}
			return host.InferType(v)
		},
		CustomEditor: func(c cell.Coord) (host.Editor, bool) {
			e, ok := t.Editors[c.Col]
			return e, ok
		},
	}
}
