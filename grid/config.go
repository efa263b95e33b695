package grid

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/host"
	"github.com/devel0/wscanvas/sortfilter"
)

// Align is the horizontal alignment of cell text.
type Align uint8

const (
	// AlignAuto right-aligns numbers and left-aligns everything else.
	AlignAuto Align = iota
	AlignLeft
	AlignRight
)

// Column describes one grid column.
type Column struct {
	Header string
	// Width overrides Config.ColWidth for this column when > 0.
	Width int
	Align Align

	// Wrap grows row heights to fit the wrapped cell text.
	Wrap bool
	// Readonly rejects edits in the whole column.
	Readonly bool

	// Format renders a value for display, filtering and copying. Nil uses
	// host.Text.
	Format func(v any) string
	// Filter is an extra row predicate on this column's values.
	Filter sortfilter.Predicate
}

// CellStyleFunc returns an advisory style for a data cell addressed in real
// space. It is only consulted by the renderer.
type CellStyleFunc func(c cell.Coord, v any) (lipgloss.Style, bool)

// Config configures the grid Model. Start from DefaultConfig.
type Config struct {
	// ID identifies the grid in events, debounce messages and snapshot
	// tokens. Empty means a random UUID.
	ID string

	Source  host.Source
	Columns []Column

	FrozenRows int
	FrozenCols int

	RowHeight    int
	ColWidth     int
	RowSeparator int
	ColSeparator int
	// MaxRowHeight caps automatic row heights of wrapped columns.
	MaxRowHeight int

	HideHeader     bool
	HideRowNumbers bool
	ShowFilterRow  bool

	PartialRows bool
	PartialCols bool

	VScroll       geometry.ScrollbarMode
	HScroll       geometry.ScrollbarMode
	ScrollbarSize int
	MinHandle     int

	// WheelStep is the number of rows (or columns with shift) scrolled by
	// one wheel event.
	WheelStep int
	// PassWheelAtBounds leaves wheel events unconsumed when the grid is
	// already scrolled to the bound in that direction.
	PassWheelAtBounds bool
	// TouchSensitivity is the drag distance in cells that scrolls by one
	// row or column.
	TouchSensitivity int
	// ScrollbarTouchTolerance widens the scrollbar hit area for touches.
	ScrollbarTouchTolerance int
	// ResizeTolerance is the distance from a column's right edge in the
	// header band that starts a column resize.
	ResizeTolerance int
	DoubleClick     time.Duration

	FilterDebounce    time.Duration
	RowHeightDebounce time.Duration

	// SortOnHeaderClick cycles a column's sort direction on header click
	// instead of selecting the column.
	SortOnHeaderClick bool
	ReadOnly          bool

	CaseSensitive bool
	Language      language.Tag

	KeyMap    KeyMap
	Style     Style
	CellStyle CellStyleFunc

	Clipboard Clipboard

	// OnChange is called after every transition that bumps the state
	// version.
	OnChange func(ChangeEvent)

	// Logger receives debug lines. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns the documented defaults:
//
//	row height 1, column width 12, column separator 1, no row separator
//	scrollbars auto, size 1, minimum handle 1
//	wheel step 3, touch sensitivity 1, resize tolerance 1
//	filter debounce 250ms, row height debounce 150ms, double click 400ms
//	max row height 6
func DefaultConfig() Config {
	return Config{
		RowHeight:               1,
		ColWidth:                12,
		ColSeparator:            1,
		MaxRowHeight:            6,
		VScroll:                 geometry.ScrollbarAuto,
		HScroll:                 geometry.ScrollbarAuto,
		ScrollbarSize:           1,
		MinHandle:               1,
		WheelStep:               3,
		TouchSensitivity:        1,
		ScrollbarTouchTolerance: 1,
		ResizeTolerance:         1,
		DoubleClick:             400 * time.Millisecond,
		FilterDebounce:          250 * time.Millisecond,
		RowHeightDebounce:       150 * time.Millisecond,
		KeyMap:                  DefaultKeyMap(),
		Style:                   DefaultStyle(),
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 1
	}
	if cfg.ColWidth <= 0 {
		cfg.ColWidth = 12
	}
	cfg.RowSeparator = max(cfg.RowSeparator, 0)
	cfg.ColSeparator = max(cfg.ColSeparator, 0)
	cfg.MaxRowHeight = max(cfg.MaxRowHeight, cfg.RowHeight)
	cfg.FrozenRows = max(cfg.FrozenRows, 0)
	cfg.FrozenCols = max(cfg.FrozenCols, 0)
	cfg.ScrollbarSize = max(cfg.ScrollbarSize, 0)
	cfg.MinHandle = max(cfg.MinHandle, 1)
	if cfg.WheelStep <= 0 {
		cfg.WheelStep = 1
	}
	if cfg.TouchSensitivity <= 0 {
		cfg.TouchSensitivity = 1
	}
	cfg.ScrollbarTouchTolerance = max(cfg.ScrollbarTouchTolerance, 0)
	cfg.ResizeTolerance = max(cfg.ResizeTolerance, 0)
	cfg.FilterDebounce = max(cfg.FilterDebounce, 0)
	cfg.RowHeightDebounce = max(cfg.RowHeightDebounce, 0)
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	return cfg
}
