package sortfilter

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/viewmap"
)

// Options configures an Engine.
type Options struct {
	// CaseSensitive disables case folding in the filter pass.
	CaseSensitive bool
	// Language selects the collation used for text sorting. The zero value
	// is language.Und.
	Language language.Tag
}

// Input is one run of the engine.
type Input struct {
	Source  host.Source
	Filters []Filter
	Sorts   []ColumnSortInfo

	// Predicates are column filters declared by the host, applied in
	// addition to the filter texts.
	Predicates map[int]Predicate
	// Text renders a cell for the filter pass. Nil uses host.Text with the
	// source's cell type.
	Text func(c cell.Coord, value any) string
}

// Result is the outcome of a run.
type Result struct {
	View          viewmap.ViewMap
	FilteredCount int
	// Sorted reports whether a prepare/commit pair was issued.
	Sorted bool
	// Moved maps each real row after the sort to the real row it held
	// before. Nil unless Sorted.
	Moved []int
}

// Engine applies composite sorts and filters over a host source.
type Engine struct {
	opts     Options
	collator *collate.Collator
	fold     cases.Caser
}

// New returns an engine for opts.
func New(opts Options) *Engine {
	return &Engine{
		opts:     opts,
		collator: collate.New(opts.Language),
		fold:     cases.Fold(),
	}
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// Run sorts the host storage (when any sort is active) and builds the view
// map of the rows that pass every filter.
func (e *Engine) Run(in Input) Result {
	n := in.Source.Len()
	if n == 0 {
		return Result{View: viewmap.Identity(0)}
	}

	in.Source.RequireRead()
	res := Result{}
	if sorts := ApplicationOrder(in.Sorts); len(sorts) > 0 {
		res.Moved = e.sort(in.Source, sorts)
		res.Sorted = true
		n = in.Source.Len()
	}

	filters := ActiveFilters(in.Filters)
	if len(filters) == 0 && len(in.Predicates) == 0 {
		res.View = viewmap.Identity(n)
		res.FilteredCount = n
		return res
	}

	needles := make([]string, len(filters))
	for i, f := range filters {
		needles[i] = e.normalize(f.Text)
	}

	visible := make([]int, 0, n)
	for real := range n {
		if e.keep(in, real, filters, needles) {
			visible = append(visible, real)
		}
	}
	res.View = viewmap.New(visible, n)
	res.FilteredCount = len(visible)
	return res
}

type keyed struct {
	row  any
	key  any
	from int
}

func (e *Engine) sort(src host.Source, sorts []ColumnSortInfo) []int {
	rows := src.Prepare()

	items := make([]keyed, len(rows))
	for i, r := range rows {
		items[i].row = r
		items[i].from = i
	}
	for _, s := range sorts {
		less := src.Less(s.ColumnIndex)
		if less == nil {
			less = e.Less
		}
		for i := range items {
			items[i].key = src.Cell(items[i].row, s.ColumnIndex)
		}
		desc := s.Direction == Descending
		slices.SortStableFunc(items, func(a, b keyed) int {
			r := 0
			if less(a.key, b.key) {
				r = -1
			} else if less(b.key, a.key) {
				r = 1
			}
			if desc {
				r = -r
			}
			return r
		})
	}

	moved := make([]int, len(items))
	for i := range items {
		rows[i] = items[i].row
		moved[i] = items[i].from
	}
	src.Commit(rows)
	return moved
}

func (e *Engine) keep(in Input, real int, filters []Filter, needles []string) bool {
	if len(filters) == 0 && len(in.Predicates) == 0 {
		return true
	}
	row := in.Source.Row(real)
	for i, f := range filters {
		v := in.Source.Cell(row, f.ColumnIndex)
		text := e.text(in, cell.At(real, f.ColumnIndex), v)
		if !strings.Contains(e.normalize(text), needles[i]) {
			return false
		}
	}
	for col, pred := range in.Predicates {
		if pred == nil {
			continue
		}
		if !pred(in.Source.Cell(row, col)) {
			return false
		}
	}
	return true
}

func (e *Engine) text(in Input, c cell.Coord, v any) string {
	if in.Text != nil {
		return in.Text(c, v)
	}
	return host.Text(in.Source.TypeOf(c, v), v)
}

func (e *Engine) normalize(s string) string {
	if e.opts.CaseSensitive {
		return s
	}
	return e.fold.String(s)
}

// Matches reports whether text contains needle under the engine's case
// rules.
func (e *Engine) Matches(text, needle string) bool {
	return strings.Contains(e.normalize(text), e.normalize(needle))
}

// Less is the default comparator.
func (e *Engine) Less(a, b any) bool { return e.Compare(a, b) < 0 }

// Compare orders two cell values. Nil sorts first. Values of the same kind
// compare naturally; text uses the engine's collator. Mixed kinds compare
// by their text rendering.
func (e *Engine) Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	switch x := a.(type) {
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case time.Duration:
		if y, ok := b.(time.Duration); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return e.collator.CompareString(x, y)
		}
	}
	return e.collator.CompareString(plain(a), plain(b))
}

func plain(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return host.Text(host.InferType(v), v)
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
