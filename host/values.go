package host

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CellType classifies a cell value for editing, sorting and clipboard
// conversion.
type CellType uint8

const (
	TypeText CellType = iota
	TypeNumber
	TypeBoolean
	TypeDate
	TypeTime
	TypeDateTime
	TypeCustom
)

func (t CellType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeDateTime:
		return "datetime"
	case TypeCustom:
		return "custom"
	default:
		return "text"
	}
}

// ParseCellType maps a type name (as used in config files) to a CellType.
func ParseCellType(s string) (CellType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "string":
		return TypeText, true
	case "number", "num", "int", "float":
		return TypeNumber, true
	case "boolean", "bool":
		return TypeBoolean, true
	case "date":
		return TypeDate, true
	case "time":
		return TypeTime, true
	case "datetime":
		return TypeDateTime, true
	case "custom":
		return TypeCustom, true
	default:
		return TypeText, false
	}
}

// Edit layouts for date and time cell types.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// InferType guesses the cell type of a Go value.
func InferType(v any) CellType {
	switch v.(type) {
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return TypeNumber
	case time.Time:
		return TypeDateTime
	case time.Duration:
		return TypeTime
	default:
		return TypeText
	}
}

// Text renders v as display text for type t. It is the text used by
// filters, the clipboard and the reference renderer.
func Text(t CellType, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		switch t {
		case TypeDate:
			return x.Format(DateLayout)
		case TypeTime:
			return x.Format(TimeLayout)
		default:
			return x.Format(DateTimeLayout)
		}
	case time.Duration:
		return formatClock(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatClock(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	h := int64(d / time.Hour)
	m := int64(d/time.Minute) % 60
	s := int64(d/time.Second) % 60
	out := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if neg {
		return "-" + out
	}
	return out
}

// Parse converts edit text back into a value of type t. prev is the value
// being replaced and guides the concrete Go type (int vs float64,
// time.Duration vs time.Time). ok is false when s is not valid for t; the
// caller must then leave the cell unchanged.
func Parse(t CellType, s string, prev any) (v any, ok bool) {
	switch t {
	case TypeNumber:
		return parseNumber(strings.TrimSpace(s), prev)
	case TypeBoolean:
		return s == "true", true
	case TypeDate:
		return parseTime(s, prev, DateLayout)
	case TypeDateTime:
		return parseTime(s, prev, DateTimeLayout, time.RFC3339, DateLayout)
	case TypeTime:
		if _, isDur := prev.(time.Duration); isDur || prev == nil {
			if d, ok := parseClock(s); ok {
				return d, true
			}
		}
		return parseTime(s, prev, TimeLayout, "15:04")
	default:
		return s, true
	}
}

func parseNumber(s string, prev any) (any, bool) {
	if s == "" {
		return nil, false
	}
	switch prev.(type) {
	case int:
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
	case int64:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil, false
	}
	return f, true
}

func parseTime(s string, prev any, layouts ...string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	loc := time.Local
	if p, ok := prev.(time.Time); ok && !p.IsZero() {
		loc = p.Location()
	}
	for _, layout := range layouts {
		if tm, err := time.ParseInLocation(layout, s, loc); err == nil {
			return tm, true
		}
	}
	return nil, false
}

func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var total time.Duration
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total += time.Duration(n) * units[i]
	}
	return total, true
}

// IsNumericInput reports whether s is acceptable while typing into a
// numeric cell: a valid number or one of its prefixes ("", "-", ".", "-.").
func IsNumericInput(s string) bool {
	switch s {
	case "", "-", ".", "-.", "+":
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Zero returns the cleared value for a cell of type t.
func Zero(t CellType, prev any) any {
	switch t {
	case TypeNumber:
		switch prev.(type) {
		case int:
			return 0
		case int64:
			return int64(0)
		}
		return float64(0)
	case TypeBoolean:
		return false
	case TypeText, TypeCustom:
		return ""
	default:
		return nil
	}
}
