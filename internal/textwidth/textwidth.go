// Package textwidth measures and fits cell text in terminal columns.
//
// All operations work on grapheme clusters, so combining marks and emoji
// sequences are never split.
package textwidth

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// DropLast removes the last grapheme cluster.
func DropLast(text string) string {
	if text == "" {
		return ""
	}
	g := uniseg.NewGraphemes(text)
	last := 0
	for g.Next() {
		last, _ = g.Positions()
	}
	return text[:last]
}

// ClusterWidth returns the terminal width of one grapheme cluster. Control
// characters other than tab are zero width; a tab counts as one column.
func ClusterWidth(cluster string) int {
	if cluster == "\t" {
		return 1
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}

// Width returns the terminal width of text, ignoring line breaks.
func Width(text string) int {
	w := 0
	for _, c := range Split(text) {
		if c == "\n" || c == "\r\n" || c == "\r" {
			continue
		}
		w += ClusterWidth(c)
	}
	return w
}

// Truncate cuts text to at most width columns. When it cuts and width
// allows, the last column is replaced by tail.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	tw := Width(tail)
	if tw >= width {
		tail, tw = "", 0
	}
	limit := width - tw
	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		cw := ClusterWidth(c)
		if used+cw > limit {
			break
		}
		sb.WriteString(c)
		used += cw
	}
	sb.WriteString(tail)
	return sb.String()
}

// Fit truncates text to width and pads it with spaces to exactly width
// columns. Right alignment pads on the left.
func Fit(text string, width int, right bool) string {
	if width <= 0 {
		return ""
	}
	text = Truncate(singleLine(text), width, "…")
	pad := width - Width(text)
	if pad <= 0 {
		return text
	}
	if right {
		return strings.Repeat(" ", pad) + text
	}
	return text + strings.Repeat(" ", pad)
}

func singleLine(text string) string {
	if !strings.ContainsAny(text, "\r\n\t") {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return ' '
		}
		return r
	}, text)
}

type unit struct {
	text  string
	width int
	space bool
}

// Wrap breaks text into lines no wider than width, preferring breaks after
// whitespace runs. Explicit newlines always break. A cluster wider than
// width gets a line of its own.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

// WrapLines returns len(Wrap(text, width)).
func WrapLines(text string, width int) int {
	return len(Wrap(text, width))
}

func wrapParagraph(para string, width int) []string {
	clusters := Split(para)
	if len(clusters) == 0 {
		return []string{""}
	}
	units := make([]unit, len(clusters))
	for i, c := range clusters {
		units[i] = unit{text: c, width: ClusterWidth(c), space: isSpace(c)}
	}

	var out []string
	for start := 0; start < len(units); {
		if len(out) > 0 {
			for start < len(units) && units[start].space {
				start++
			}
			if start == len(units) {
				break
			}
		}
		used := 0
		overflow := start
		for overflow < len(units) {
			w := max(units[overflow].width, 1)
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}
		end := overflow
		if overflow < len(units) {
			if br, ok := wordBreak(units, start, overflow); ok {
				end = br
			}
		}
		if end <= start {
			end = start + 1
		}
		var sb strings.Builder
		for _, u := range units[start:end] {
			sb.WriteString(u.text)
		}
		out = append(out, strings.TrimRightFunc(sb.String(), unicode.IsSpace))
		start = end
	}
	return out
}

// wordBreak returns the index just past the last whitespace run in
// [start, overflow), if there is one that leaves a non-empty line.
func wordBreak(units []unit, start, overflow int) (int, bool) {
	last := -1
	for i := start; i < overflow; {
		if !units[i].space {
			i++
			continue
		}
		j := i + 1
		for j < len(units) && units[j].space {
			j++
		}
		last = j
		i = j
	}
	if last <= start {
		return 0, false
	}
	return last, true
}

func isSpace(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return cluster != ""
}
