// Package clipboard converts grid blocks to and from tab-separated text and
// adapts the system clipboard.
package clipboard

import (
	"strings"

	sysclip "github.com/atotto/clipboard"
)

// Encode joins rows with "\n" and cells with "\t". No trailing newline is
// written.
func Encode(rows [][]string) string {
	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, c := range row {
			if j > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(c)
		}
	}
	return sb.String()
}

// Decode splits text into rows and cells. "\r\n" is accepted as a row
// separator and one trailing newline is dropped. Empty text decodes to no
// rows.
func Decode(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Split(line, "\t")
	}
	return out
}

// Block is decoded clipboard content addressed for tiling.
type Block struct {
	rows [][]string
	cols int
}

// NewBlock wraps decoded rows. Ragged rows read as empty cells past their
// end.
func NewBlock(rows [][]string) Block {
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	return Block{rows: rows, cols: cols}
}

// Parse decodes text into a Block.
func Parse(text string) Block { return NewBlock(Decode(text)) }

func (b Block) Rows() int   { return len(b.rows) }
func (b Block) Cols() int   { return b.cols }
func (b Block) Empty() bool { return len(b.rows) == 0 || b.cols == 0 }

// At returns the cell at (r, c), cycling rows and columns by modulo so the
// block tiles over larger targets.
func (b Block) At(r, c int) string {
	if b.Empty() {
		return ""
	}
	row := b.rows[mod(r, len(b.rows))]
	c = mod(c, b.cols)
	if c >= len(row) {
		return ""
	}
	return row[c]
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// System is the OS clipboard.
type System struct{}

// ReadText reads the system clipboard.
func (System) ReadText() (string, error) { return sysclip.ReadAll() }

// WriteText replaces the system clipboard content.
func (System) WriteText(s string) error { return sysclip.WriteAll(s) }

// Unsupported reports whether no clipboard utility is available.
func Unsupported() bool { return sysclip.Unsupported }

// Memory is an in-process clipboard, used when the system one is
// unavailable.
type Memory struct {
	text string
}

func (m *Memory) ReadText() (string, error) { return m.text, nil }

func (m *Memory) WriteText(s string) error {
	m.text = s
	return nil
}
