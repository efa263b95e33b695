package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/devel0/wscanvas/clipboard"
	"github.com/devel0/wscanvas/grid"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/host/jsonsource"
	"github.com/devel0/wscanvas/host/memsource"
	"github.com/devel0/wscanvas/host/sqlsource"
)

// notesEditor is the custom editor handle for free-text note cells.
const notesEditor = "notes"

// dataset is the host data behind the grid.
type dataset struct {
	source  host.Source
	columns []grid.Column
	// save persists edits; nil when the data lives only in memory.
	save  func(ctx context.Context) error
	close func()
}

func openData(ctx context.Context, o options) (dataset, error) {
	switch {
	case o.sqlitePath != "":
		if o.table == "" {
			return dataset{}, errors.New("-sqlite needs -table")
		}
		return openSQLite(ctx, o.sqlitePath, o.table)
	case o.jsonPath != "":
		return openJSON(o.jsonPath)
	default:
		return generated(o.rows), nil
	}
}

func generated(n int) dataset {
	names := []string{"anchor", "basalt", "cobalt", "delta", "ember", "fjord", "garnet", "harbor"}
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{
			i + 1,
			names[rand.IntN(len(names))],
			rand.IntN(500),
			rand.IntN(2) == 0,
			start.AddDate(0, 0, rand.IntN(365)),
			"",
		}
	}
	t := memsource.New(rows)
	t.Types = []host.CellType{host.TypeNumber, host.TypeText, host.TypeNumber, host.TypeBoolean, host.TypeDate, host.TypeText}
	t.ReadonlyCols = map[int]bool{0: true}
	t.Editors = map[int]host.Editor{5: notesEditor}
	return dataset{
		source: t.Source(),
		columns: []grid.Column{
			{Header: "id", Width: 6},
			{Header: "name"},
			{Header: "qty", Width: 6},
			{Header: "done", Width: 6},
			{Header: "due", Width: 10},
			{Header: "notes", Width: 24, Wrap: true},
		},
		close: func() {},
	}
}

func openJSON(path string) (dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataset{}, fmt.Errorf("reading %s: %w", path, err)
	}
	cols := jsonColumns(data)
	doc, err := jsonsource.Parse(data, cols)
	if err != nil {
		return dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	ds := dataset{
		source: doc.Source(),
		save: func(context.Context) error {
			return os.WriteFile(path, doc.Bytes(), 0o644)
		},
		close: func() {},
	}
	for _, c := range cols {
		ds.columns = append(ds.columns, grid.Column{Header: c.Header, Readonly: c.Readonly})
	}
	return ds, nil
}

// jsonColumns binds one column per top-level key of the first record.
func jsonColumns(data []byte) []jsonsource.Column {
	var cols []jsonsource.Column
	gjson.GetBytes(data, "0").ForEach(func(key, value gjson.Result) bool {
		c := jsonsource.Column{Header: key.String(), Path: gjsonEscape(key.String())}
		switch value.Type {
		case gjson.Number:
			c.Type = host.TypeNumber
		case gjson.True, gjson.False:
			c.Type = host.TypeBoolean
		case gjson.JSON:
			c.Readonly = true
		}
		cols = append(cols, c)
		return true
	})
	return cols
}

func gjsonEscape(key string) string {
	out := make([]rune, 0, len(key))
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func openSQLite(ctx context.Context, path, table string) (dataset, error) {
	t, err := sqlsource.OpenFile(ctx, path, table)
	if err != nil {
		return dataset{}, err
	}
	ds := dataset{
		source: t.Source(),
		save:   t.Flush,
		close:  func() { _ = t.Close() },
	}
	for _, c := range t.Columns() {
		ds.columns = append(ds.columns, grid.Column{Header: c.Name})
	}
	return ds, nil
}

func systemClipboard() grid.Clipboard {
	if clipboard.Unsupported() {
		return &clipboard.Memory{}
	}
	return clipboard.System{}
}
