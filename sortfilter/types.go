package sortfilter

import (
	"cmp"
	"slices"
)

// Direction is the sort direction of one column.
type Direction uint8

const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// Next cycles None -> Ascending -> Descending -> None.
func (d Direction) Next() Direction {
	switch d {
	case None:
		return Ascending
	case Ascending:
		return Descending
	default:
		return None
	}
}

// ColumnSortInfo is one column's participation in the composite sort.
// Lower SortOrder means higher priority.
type ColumnSortInfo struct {
	ColumnIndex int
	SortOrder   int
	Direction   Direction
}

// Filter is the filter text of one column.
type Filter struct {
	ColumnIndex int
	Text        string
}

// Predicate is a column-declared custom filter; the row survives only when
// it returns true for the row's value in that column.
type Predicate func(value any) bool

// ActiveFilters returns one filter per column (the last one given wins),
// dropping empty texts. The result is ordered by column.
func ActiveFilters(filters []Filter) []Filter {
	byCol := make(map[int]string, len(filters))
	for _, f := range filters {
		byCol[f.ColumnIndex] = f.Text
	}
	out := make([]Filter, 0, len(byCol))
	for col, text := range byCol {
		if text == "" {
			continue
		}
		out = append(out, Filter{ColumnIndex: col, Text: text})
	}
	slices.SortFunc(out, func(a, b Filter) int { return cmp.Compare(a.ColumnIndex, b.ColumnIndex) })
	return out
}

// WithFilter returns filters with col's text replaced by text. An empty text
// removes the column's filter.
func WithFilter(filters []Filter, col int, text string) []Filter {
	out := make([]Filter, 0, len(filters)+1)
	for _, f := range filters {
		if f.ColumnIndex != col {
			out = append(out, f)
		}
	}
	if text != "" {
		out = append(out, Filter{ColumnIndex: col, Text: text})
	}
	return out
}

// FilterText returns the filter text of col.
func FilterText(filters []Filter, col int) string {
	text := ""
	for _, f := range filters {
		if f.ColumnIndex == col {
			text = f.Text
		}
	}
	return text
}

// ApplicationOrder returns the active sorts in the order their stable passes
// run: SortOrder descending, so the lowest SortOrder is applied last and
// dominates. Columns with Direction None are dropped; for a column given
// twice the last entry wins.
func ApplicationOrder(sorts []ColumnSortInfo) []ColumnSortInfo {
	byCol := make(map[int]ColumnSortInfo, len(sorts))
	for _, s := range sorts {
		byCol[s.ColumnIndex] = s
	}
	out := make([]ColumnSortInfo, 0, len(byCol))
	for _, s := range byCol {
		if s.Direction == None {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b ColumnSortInfo) int {
		if c := cmp.Compare(b.SortOrder, a.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(b.ColumnIndex, a.ColumnIndex)
	})
	return out
}

// Cycle advances col's direction the way a header click does. The clicked
// column becomes the primary key (SortOrder 0) and the other active columns
// keep their relative order behind it.
func Cycle(sorts []ColumnSortInfo, col int) []ColumnSortInfo {
	current := None
	rest := make([]ColumnSortInfo, 0, len(sorts))
	for _, s := range sorts {
		if s.ColumnIndex == col {
			current = s.Direction
			continue
		}
		if s.Direction != None {
			rest = append(rest, s)
		}
	}
	slices.SortStableFunc(rest, func(a, b ColumnSortInfo) int { return cmp.Compare(a.SortOrder, b.SortOrder) })

	out := make([]ColumnSortInfo, 0, len(rest)+1)
	next := current.Next()
	if next != None {
		out = append(out, ColumnSortInfo{ColumnIndex: col, SortOrder: 0, Direction: next})
	}
	for _, s := range rest {
		s.SortOrder = len(out)
		out = append(out, s)
	}
	return out
}

// DirectionOf returns the direction of col.
func DirectionOf(sorts []ColumnSortInfo, col int) Direction {
	d := None
	for _, s := range sorts {
		if s.ColumnIndex == col {
			d = s.Direction
		}
	}
	return d
}
