// Package sqlsource serves a SQLite table as a host.Source.
//
// The table is read once into memory keyed by rowid. Sorting only reorders
// the in-memory rows; edited cells are written back with UPDATE statements
// inside one transaction when the dataset is committed.
package sqlsource

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
)

// Driver is the database/sql driver name registered by modernc.org/sqlite.
const Driver = "sqlite"

// Column describes one table column.
type Column struct {
	Name string
	Type host.CellType
}

type row struct {
	rowid int64
	vals  []any
}

type pendingKey struct {
	rowid int64
	col   int
}

// Table is an in-memory view of a SQLite table.
type Table struct {
	db   *sql.DB
	name string
	cols []Column
	rows []*row
	// staged holds writes of the prepared copy; dirty holds committed
	// writes not yet flushed.
	staged map[pendingKey]any
	dirty  map[pendingKey]any

	err error
}

// OpenFile opens path with the sqlite driver and loads table.
func OpenFile(ctx context.Context, path, table string) (*Table, error) {
	db, err := sql.Open(Driver, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	t, err := Load(ctx, db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// Load reads every row of table from db.
func Load(ctx context.Context, db *sql.DB, table string) (*Table, error) {
	q := fmt.Sprintf(`SELECT rowid, * FROM %s`, quoteIdent(table))
	rs, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rs.Close()

	colTypes, err := rs.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	if len(colTypes) < 1 {
		return nil, fmt.Errorf("load %s: no columns", table)
	}

	t := &Table{db: db, name: table, staged: map[pendingKey]any{}, dirty: map[pendingKey]any{}}
	for _, ct := range colTypes[1:] {
		t.cols = append(t.cols, Column{Name: ct.Name(), Type: declaredType(ct.DatabaseTypeName())})
	}

	for rs.Next() {
		ptrs := make([]any, len(colTypes))
		for i := range ptrs {
			ptrs[i] = new(any)
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		r := &row{vals: make([]any, len(t.cols))}
		switch id := (*ptrs[0].(*any)).(type) {
		case int64:
			r.rowid = id
		default:
			return nil, fmt.Errorf("scan %s: unexpected rowid %T", table, id)
		}
		for i := range t.cols {
			r.vals[i] = fromSQL(t.cols[i].Type, *(ptrs[i+1].(*any)))
		}
		t.rows = append(t.rows, r)
	}
	return t, rs.Err()
}

func declaredType(decl string) host.CellType {
	d := strings.ToUpper(decl)
	switch {
	case strings.Contains(d, "INT"), strings.Contains(d, "REAL"), strings.Contains(d, "NUM"),
		strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return host.TypeNumber
	case strings.Contains(d, "BOOL"):
		return host.TypeBoolean
	case d == "DATE":
		return host.TypeDate
	case strings.Contains(d, "DATETIME"), strings.Contains(d, "TIMESTAMP"):
		return host.TypeDateTime
	case d == "TIME":
		return host.TypeTime
	default:
		return host.TypeText
	}
}

func fromSQL(t host.CellType, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch t {
	case host.TypeBoolean:
		switch x := v.(type) {
		case int64:
			return x != 0
		case string:
			return x == "true" || x == "1"
		}
	case host.TypeDate, host.TypeDateTime, host.TypeTime:
		if s, ok := v.(string); ok {
			if parsed, ok := host.Parse(t, s, nil); ok {
				return parsed
			}
		}
	}
	return v
}

func toSQL(t host.CellType, v any) any {
	switch x := v.(type) {
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case time.Time, time.Duration:
		return host.Text(t, x)
	}
	return v
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Columns returns the table columns (rowid excluded).
func (t *Table) Columns() []Column { return slices.Clone(t.cols) }

// Len returns the number of loaded rows.
func (t *Table) Len() int { return len(t.rows) }

// Value returns the value at real row i, column col.
func (t *Table) Value(i, col int) any {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return cellOf(t.rows[i], col)
}

// Err returns the last write-back error, if any.
func (t *Table) Err() error { return t.err }

// Close closes the underlying database.
func (t *Table) Close() error { return t.db.Close() }

func cellOf(r any, col int) any {
	rr, _ := r.(*row)
	if rr == nil || col < 0 || col >= len(rr.vals) {
		return nil
	}
	return rr.vals[col]
}

// Flush writes pending edits back to the database in one transaction.
func (t *Table) Flush(ctx context.Context) error {
	if len(t.dirty) == 0 {
		return nil
	}
	keys := make([]pendingKey, 0, len(t.dirty))
	for k := range t.dirty {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, comparePending)

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("flush %s: %w", t.name, err)
	}
	for _, k := range keys {
		c := t.cols[k.col]
		q := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE rowid = ?`, quoteIdent(t.name), quoteIdent(c.Name))
		if _, err := tx.ExecContext(ctx, q, toSQL(c.Type, t.dirty[k]), k.rowid); err != nil {
			return errors.Join(fmt.Errorf("update %s.%s: %w", t.name, c.Name, err), tx.Rollback())
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("flush %s: %w", t.name, err)
	}
	clear(t.dirty)
	return nil
}

func comparePending(a, b pendingKey) int {
	if c := cmp.Compare(a.rowid, b.rowid); c != 0 {
		return c
	}
	return cmp.Compare(a.col, b.col)
}

// Source exposes the table through the host contract. Writes of a prepared
// copy are dropped unless it is committed. CommitDataset swaps the
// in-memory rows and flushes pending edits; a flush failure is kept in
// Err and the edits stay pending.
func (t *Table) Source() host.Source {
	return host.Source{
		RowCount: func() int { return len(t.rows) },
		Row: func(i int) any {
			if i < 0 || i >= len(t.rows) {
				return nil
			}
			return t.rows[i]
		},
		Cell: cellOf,
		PrepareDataset: func() []any {
			clear(t.staged)
			out := make([]any, len(t.rows))
			for i, r := range t.rows {
				out[i] = r
			}
			return out
		},
		SetCellData: func(rows []any, c cell.Coord, v any) {
			if c.Row < 0 || c.Row >= len(rows) || c.Col < 0 || c.Col >= len(t.cols) {
				return
			}
			r, _ := rows[c.Row].(*row)
			if r == nil {
				return
			}
			next := &row{rowid: r.rowid, vals: slices.Clone(r.vals)}
			next.vals[c.Col] = v
			rows[c.Row] = next
			t.staged[pendingKey{rowid: r.rowid, col: c.Col}] = v
		},
		CommitDataset: func(rows []any) {
			next := make([]*row, 0, len(rows))
			for _, r := range rows {
				if rr, ok := r.(*row); ok {
					next = append(next, rr)
				}
			}
			t.rows = next
			maps.Copy(t.dirty, t.staged)
			clear(t.staged)
			t.err = t.Flush(context.Background())
		},
		CellType: func(c cell.Coord, v any) host.CellType {
			if c.Col >= 0 && c.Col < len(t.cols) {
				return t.cols[c.Col].Type
			}
			return host.InferType(v)
		},
	}
}
