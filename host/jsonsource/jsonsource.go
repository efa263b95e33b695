// Package jsonsource serves a JSON array of records as a host.Source.
//
// Each array element is a row; columns are gjson paths evaluated against the
// element. Edits are written back with sjson on the element's raw JSON.
package jsonsource

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
)

// ErrNotArray is returned when the document root is not a JSON array.
var ErrNotArray = errors.New("json document root is not an array")

// Column binds a grid column to a gjson path inside each record.
type Column struct {
	Header   string
	Path     string
	Type     host.CellType
	Readonly bool
}

// Document holds the records as raw JSON strings.
type Document struct {
	cols    []Column
	records []string
}

// Parse validates data and splits it into records.
func Parse(data []byte, cols []Column) (*Document, error) {
	raw := string(data)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("jsonsource: invalid json")
	}
	root := gjson.Parse(raw)
	if !root.IsArray() {
		return nil, fmt.Errorf("jsonsource: %w", ErrNotArray)
	}
	d := &Document{cols: slices.Clone(cols)}
	root.ForEach(func(_, value gjson.Result) bool {
		d.records = append(d.records, value.Raw)
		return true
	})
	return d, nil
}

// Columns returns the column bindings.
func (d *Document) Columns() []Column { return slices.Clone(d.cols) }

// Len returns the number of records.
func (d *Document) Len() int { return len(d.records) }

// Bytes serializes the document back to a JSON array.
func (d *Document) Bytes() []byte {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range d.records {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(r)
	}
	sb.WriteByte(']')
	return []byte(sb.String())
}

// Value reads column col of record i.
func (d *Document) Value(i, col int) any {
	if i < 0 || i >= len(d.records) {
		return nil
	}
	return d.cellValue(d.records[i], col)
}

func (d *Document) cellValue(record any, col int) any {
	raw, _ := record.(string)
	if col < 0 || col >= len(d.cols) || raw == "" {
		return nil
	}
	c := d.cols[col]
	res := gjson.Get(raw, c.Path)
	if !res.Exists() {
		return nil
	}
	switch res.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		return res.Bool()
	case gjson.Number:
		if c.Type == host.TypeNumber {
			return res.Float()
		}
	}
	switch c.Type {
	case host.TypeDate, host.TypeDateTime, host.TypeTime:
		if v, ok := host.Parse(c.Type, res.String(), nil); ok {
			return v
		}
		if tm, err := time.Parse(time.RFC3339, res.String()); err == nil {
			return tm
		}
	case host.TypeBoolean:
		return res.Bool()
	case host.TypeNumber:
		return res.Float()
	}
	return res.String()
}

func (d *Document) jsonValue(col int, v any) any {
	switch x := v.(type) {
	case time.Time:
		t := host.TypeDateTime
		if col >= 0 && col < len(d.cols) {
			t = d.cols[col].Type
		}
		return host.Text(t, x)
	case time.Duration:
		return host.Text(host.TypeTime, x)
	default:
		return v
	}
}

// Source exposes the document through the host contract.
func (d *Document) Source() host.Source {
	return host.Source{
		RowCount: func() int { return len(d.records) },
		Row: func(i int) any {
			if i < 0 || i >= len(d.records) {
				return nil
			}
			return d.records[i]
		},
		Cell: d.cellValue,
		PrepareDataset: func() []any {
			out := make([]any, len(d.records))
			for i, r := range d.records {
				out[i] = r
			}
			return out
		},
		SetCellData: func(rows []any, c cell.Coord, v any) {
			if c.Row < 0 || c.Row >= len(rows) || c.Col < 0 || c.Col >= len(d.cols) {
				return
			}
			raw, _ := rows[c.Row].(string)
			next, err := sjson.Set(raw, d.cols[c.Col].Path, d.jsonValue(c.Col, v))
			if err != nil {
				return
			}
			rows[c.Row] = next
		},
		CommitDataset: func(rows []any) {
			next := make([]string, len(rows))
			for i, r := range rows {
				next[i], _ = r.(string)
			}
			d.records = next
		},
		IsCellReadonly: func(c cell.Coord) bool {
			return c.Col >= 0 && c.Col < len(d.cols) && d.cols[c.Col].Readonly
		},
		CellType: func(c cell.Coord, v any) host.CellType {
			if c.Col >= 0 && c.Col < len(d.cols) {
				return d.cols[c.Col].Type
			}
			return host.InferType(v)
		},
	}
}
