package textwidth

import (
	"slices"
	"testing"
)

func TestSplitAndCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "é" + "\U0001F468\u200d\U0001F469\u200d\U0001F467" + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "é" {
		t.Fatalf("split[1]=%q, want %q", got[1], "é")
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
}

func TestDropLast(t *testing.T) {
	if got, want := DropLast("ab"+"é"), "ab"; got != want {
		t.Fatalf("drop last=%q, want %q", got, want)
	}
	if got := DropLast(""); got != "" {
		t.Fatalf("drop last of empty=%q", got)
	}
}

func TestWidth(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本", 4},
		{"é", 1},
	}
	for _, c := range cases {
		if got := Width(c.text); got != c.want {
			t.Fatalf("Width(%q)=%d, want %d", c.text, got, c.want)
		}
	}
}

func TestTruncateAndFit(t *testing.T) {
	if got, want := Truncate("abcdef", 4, "…"), "abc…"; got != want {
		t.Fatalf("truncate=%q, want %q", got, want)
	}
	if got, want := Truncate("日本語", 3, ""), "日"; got != want {
		t.Fatalf("truncate wide=%q, want %q", got, want)
	}
	if got, want := Fit("ab", 4, false), "ab  "; got != want {
		t.Fatalf("fit left=%q, want %q", got, want)
	}
	if got, want := Fit("7", 3, true), "  7"; got != want {
		t.Fatalf("fit right=%q, want %q", got, want)
	}
	if got, want := Fit("a\nb", 3, false), "a b"; got != want {
		t.Fatalf("fit multiline=%q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 5, []string{""}},
		{"hello world", 5, []string{"hello", "world"}},
		{"hello world", 11, []string{"hello world"}},
		{"abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"a b\nc", 10, []string{"a b", "c"}},
	}
	for _, c := range cases {
		if got := Wrap(c.text, c.width); !slices.Equal(got, c.want) {
			t.Fatalf("Wrap(%q, %d)=%q, want %q", c.text, c.width, got, c.want)
		}
	}
	if got := WrapLines("one two three", 5); got != 3 {
		t.Fatalf("wrap lines=%d, want 3", got)
	}
}
