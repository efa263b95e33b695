// Package config loads grid settings from TOML or YAML files and applies
// them onto a grid.Config.
//
// A file only overrides what it names: every setting is optional, and a
// missing file loads as the empty File.
//
//	[grid]
//	frozen_rows = 1
//	show_filter_row = true
//
//	[scroll]
//	vertical = "on"
//	wheel_step = 5
//
//	[input]
//	filter_debounce = "300ms"
//
//	[keys]
//	copy_worksheet = ["alt+c", "f9"]
//
//	[[columns]]
//	header = "notes"
//	width = 30
//	wrap = true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a grid config.
type File struct {
	Grid    Grid                `toml:"grid" yaml:"grid"`
	Scroll  Scroll              `toml:"scroll" yaml:"scroll"`
	Input   Input               `toml:"input" yaml:"input"`
	Keys    map[string][]string `toml:"keys" yaml:"keys"`
	Columns []Column            `toml:"columns" yaml:"columns"`
}

// Grid holds layout and behaviour settings.
type Grid struct {
	FrozenRows   *int `toml:"frozen_rows" yaml:"frozen_rows"`
	FrozenCols   *int `toml:"frozen_cols" yaml:"frozen_cols"`
	RowHeight    *int `toml:"row_height" yaml:"row_height"`
	ColWidth     *int `toml:"col_width" yaml:"col_width"`
	RowSeparator *int `toml:"row_separator" yaml:"row_separator"`
	ColSeparator *int `toml:"col_separator" yaml:"col_separator"`
	MaxRowHeight *int `toml:"max_row_height" yaml:"max_row_height"`

	HideHeader     *bool `toml:"hide_header" yaml:"hide_header"`
	HideRowNumbers *bool `toml:"hide_row_numbers" yaml:"hide_row_numbers"`
	ShowFilterRow  *bool `toml:"show_filter_row" yaml:"show_filter_row"`
	PartialRows    *bool `toml:"partial_rows" yaml:"partial_rows"`
	PartialCols    *bool `toml:"partial_cols" yaml:"partial_cols"`

	ReadOnly          *bool `toml:"read_only" yaml:"read_only"`
	SortOnHeaderClick *bool `toml:"sort_on_header_click" yaml:"sort_on_header_click"`
	CaseSensitive     *bool `toml:"case_sensitive" yaml:"case_sensitive"`
	// Language is a BCP 47 tag for text collation, e.g. "sv" or "de-CH".
	Language string `toml:"language" yaml:"language"`
}

// Scroll holds scrollbar and pointer scrolling settings.
type Scroll struct {
	// Vertical and Horizontal are "auto", "on" or "off".
	Vertical   string `toml:"vertical" yaml:"vertical"`
	Horizontal string `toml:"horizontal" yaml:"horizontal"`

	Size              *int  `toml:"size" yaml:"size"`
	MinHandle         *int  `toml:"min_handle" yaml:"min_handle"`
	WheelStep         *int  `toml:"wheel_step" yaml:"wheel_step"`
	PassWheelAtBounds *bool `toml:"pass_wheel_at_bounds" yaml:"pass_wheel_at_bounds"`
	TouchSensitivity  *int  `toml:"touch_sensitivity" yaml:"touch_sensitivity"`
	TouchTolerance    *int  `toml:"touch_tolerance" yaml:"touch_tolerance"`
}

// Input holds timing settings. Durations use time.ParseDuration syntax.
type Input struct {
	DoubleClick       string `toml:"double_click" yaml:"double_click"`
	FilterDebounce    string `toml:"filter_debounce" yaml:"filter_debounce"`
	RowHeightDebounce string `toml:"row_height_debounce" yaml:"row_height_debounce"`
	ResizeTolerance   *int   `toml:"resize_tolerance" yaml:"resize_tolerance"`
}

// Column overrides the grid column with the same header.
type Column struct {
	Header string `toml:"header" yaml:"header"`
	Width  int    `toml:"width" yaml:"width"`
	// Align is "auto", "left" or "right".
	Align    string `toml:"align" yaml:"align"`
	Wrap     *bool  `toml:"wrap" yaml:"wrap"`
	Readonly *bool  `toml:"readonly" yaml:"readonly"`
}

// Format is a config file syntax.
type Format uint8

const (
	TOML Format = iota
	YAML
)

// FormatOf selects the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads path. A missing file is not an error and yields the empty
// File.
func Load(path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, format, data)
}

// Parse decodes data. Unknown settings are parse errors. path is only used
// in errors.
func Parse(path string, format Format, data []byte) (File, error) {
	var f File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return File{}, yamlError(path, err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, tomlError(path, err)
		}
	}
	return f, nil
}

func tomlError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		pe.Line, pe.Column = serr.Errors[0].Position()
		pe.Message = "unknown setting " + strings.Join(serr.Errors[0].Key(), ".")
	}
	return pe
}

func yamlError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var terr *yaml.TypeError
	if errors.As(err, &terr) && len(terr.Errors) > 0 {
		msg = terr.Errors[0]
	}
	var line int
	if _, serr := fmt.Sscanf(msg, "line %d:", &line); serr == nil {
		pe.Line = line
		if i := strings.Index(msg, ": "); i >= 0 {
			pe.Message = msg[i+2:]
		}
	}
	return pe
}
