package config

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/grid"
)

// Apply overlays f onto cfg and returns the result. Settings that do not
// parse are skipped and reported together in the returned error; the rest
// still apply.
func Apply(f File, cfg grid.Config) (grid.Config, error) {
	var errs []error
	bad := func(setting, value string, err error) {
		errs = append(errs, &SettingError{Setting: setting, Value: value, Err: err})
	}

	g := f.Grid
	setInt(&cfg.FrozenRows, g.FrozenRows)
	setInt(&cfg.FrozenCols, g.FrozenCols)
	setInt(&cfg.RowHeight, g.RowHeight)
	setInt(&cfg.ColWidth, g.ColWidth)
	setInt(&cfg.RowSeparator, g.RowSeparator)
	setInt(&cfg.ColSeparator, g.ColSeparator)
	setInt(&cfg.MaxRowHeight, g.MaxRowHeight)
	setBool(&cfg.HideHeader, g.HideHeader)
	setBool(&cfg.HideRowNumbers, g.HideRowNumbers)
	setBool(&cfg.ShowFilterRow, g.ShowFilterRow)
	setBool(&cfg.PartialRows, g.PartialRows)
	setBool(&cfg.PartialCols, g.PartialCols)
	setBool(&cfg.ReadOnly, g.ReadOnly)
	setBool(&cfg.SortOnHeaderClick, g.SortOnHeaderClick)
	setBool(&cfg.CaseSensitive, g.CaseSensitive)
	if g.Language != "" {
		tag, err := language.Parse(g.Language)
		if err != nil {
			bad("grid.language", g.Language, err)
		} else {
			cfg.Language = tag
		}
	}

	s := f.Scroll
	for _, bar := range []struct {
		name  string
		value string
		dst   *geometry.ScrollbarMode
	}{
		{"scroll.vertical", s.Vertical, &cfg.VScroll},
		{"scroll.horizontal", s.Horizontal, &cfg.HScroll},
	} {
		if bar.value == "" {
			continue
		}
		mode, ok := geometry.ParseScrollbarMode(strings.ToLower(bar.value))
		if !ok {
			bad(bar.name, bar.value, ErrInvalidValue)
			continue
		}
		*bar.dst = mode
	}
	setInt(&cfg.ScrollbarSize, s.Size)
	setInt(&cfg.MinHandle, s.MinHandle)
	setInt(&cfg.WheelStep, s.WheelStep)
	setBool(&cfg.PassWheelAtBounds, s.PassWheelAtBounds)
	setInt(&cfg.TouchSensitivity, s.TouchSensitivity)
	setInt(&cfg.ScrollbarTouchTolerance, s.TouchTolerance)

	in := f.Input
	for _, d := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"input.double_click", in.DoubleClick, &cfg.DoubleClick},
		{"input.filter_debounce", in.FilterDebounce, &cfg.FilterDebounce},
		{"input.row_height_debounce", in.RowHeightDebounce, &cfg.RowHeightDebounce},
	} {
		if d.value == "" {
			continue
		}
		v, err := time.ParseDuration(d.value)
		if err != nil || v < 0 {
			bad(d.name, d.value, ErrInvalidValue)
			continue
		}
		*d.dst = v
	}
	setInt(&cfg.ResizeTolerance, in.ResizeTolerance)

	for _, name := range slices.Sorted(maps.Keys(f.Keys)) {
		b, ok := cfg.KeyMap.Binding(name)
		if !ok {
			bad("keys."+name, strings.Join(f.Keys[name], ","), ErrUnknownKey)
			continue
		}
		keys := f.Keys[name]
		if len(keys) == 0 {
			b.Unbind()
			continue
		}
		b.SetKeys(keys...)
		b.SetHelp(keys[0], b.Help().Desc)
		b.SetEnabled(true)
	}

	if len(f.Columns) > 0 {
		cfg.Columns = slices.Clone(cfg.Columns)
	}
	for _, fc := range f.Columns {
		i := slices.IndexFunc(cfg.Columns, func(c grid.Column) bool { return c.Header == fc.Header })
		if i < 0 {
			bad("columns.header", fc.Header, ErrInvalidValue)
			continue
		}
		col := &cfg.Columns[i]
		if fc.Width > 0 {
			col.Width = fc.Width
		}
		if fc.Align != "" {
			a, ok := parseAlign(fc.Align)
			if !ok {
				bad("columns."+fc.Header+".align", fc.Align, ErrInvalidValue)
			} else {
				col.Align = a
			}
		}
		setBool(&col.Wrap, fc.Wrap)
		setBool(&col.Readonly, fc.Readonly)
	}

	return cfg, errors.Join(errs...)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func parseAlign(s string) (grid.Align, bool) {
	switch strings.ToLower(s) {
	case "auto":
		return grid.AlignAuto, true
	case "left":
		return grid.AlignLeft, true
	case "right":
		return grid.AlignRight, true
	default:
		return grid.AlignAuto, false
	}
}
