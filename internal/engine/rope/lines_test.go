package rope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromLine(t *testing.T) {
	r := threeLines()
	tests := []struct {
		line     int
		expected string
		ok       bool
	}{
		{0, "Hello Joe!\nHello Mike!\nHello Robert!\n", true},
		{1, "Hello Mike!\nHello Robert!\n", true},
		{2, "Hello Robert!\n", true},
		{3, "", false},
		{-1, "", false},
	}

	for _, tt := range tests {
		got, ok := r.FromLine(tt.line)
		if ok != tt.ok || got.String() != tt.expected {
			t.Errorf("FromLine(%d) = %q, %v; want %q, %v", tt.line, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestLine(t *testing.T) {
	r := threeLines()
	tests := []struct {
		line     int
		expected string
		ok       bool
	}{
		{0, "Hello Joe!\n", true},
		{1, "Hello Mike!\n", true},
		{2, "Hello Robert!\n", true},
		{3, "", false},
	}

	for _, tt := range tests {
		got, ok := r.Line(tt.line)
		if ok != tt.ok || got.String() != tt.expected {
			t.Errorf("Line(%d) = %q, %v; want %q, %v", tt.line, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestLinePos(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		pos   int
		ok    bool
	}{
		{"empty line 0", "", 0, 0, true},
		{"empty line 1", "", 1, 0, false},
		{"no newline line 0", "hello", 0, 0, true},
		{"no newline line 1", "hello", 1, 0, false},
		{"second line", "a\nb\nc", 1, 2, true},
		{"partial last line", "a\nb\nc", 2, 0, false},
		{"terminated last line", "a\nb\nc\n", 2, 4, true},
		{"blank lines", "\n\n\n", 2, 2, true},
		{"unicode", "日本\n語\nx", 1, 3, true},
		{"negative", "a\nb\n", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := FromString(tt.input).LinePos(tt.line)
			if pos != tt.pos || ok != tt.ok {
				t.Errorf("LinePos(%d) = %d, %v; want %d, %v", tt.line, pos, ok, tt.pos, tt.ok)
			}
		})
	}
}

func TestLinePosInsideLeftSubtree(t *testing.T) {
	// The left subtree "a\nb" does not end with a newline, so line 1 starts
	// inside it rather than at the left/right boundary.
	r := FromString("a\nb").Concat(FromString("c\nd\n"))
	if r.String() != "a\nbc\nd\n" {
		t.Fatalf("unexpected content %q", r.String())
	}

	var got []int
	for line := 0; line < r.Lines(); line++ {
		pos, ok := r.LinePos(line)
		if !ok {
			t.Fatalf("LinePos(%d) failed", line)
		}
		got = append(got, pos)
	}
	if diff := cmp.Diff([]int{0, 2, 5}, got); diff != "" {
		t.Errorf("line positions mismatch (-want +got):\n%s", diff)
	}

	line, ok := r.Line(1)
	if !ok || line.String() != "bc\n" {
		t.Errorf("Line(1) = %q, %v; want %q, true", line, ok, "bc\n")
	}
}

func TestLineExactContent(t *testing.T) {
	r := FromString("first\nsecond\nthird")

	line, ok := r.Line(1)
	if !ok || line.String() != "second\n" {
		t.Errorf("Line(1) = %q, %v; want %q, true", line, ok, "second\n")
	}
	if _, ok := r.Line(2); ok {
		t.Error("Line(2) should be absent: the text has only 2 newlines")
	}

	single, ok := FromString("no newline").Line(0)
	if !ok || single.String() != "no newline" {
		t.Errorf("Line(0) = %q, %v; want whole text", single, ok)
	}
}

func TestLinesEndWithNewline(t *testing.T) {
	r := FromString("alpha\nbeta\n\ngamma\ndelta\n").Insert(3, FromString("XX\nYY"))
	for i := 0; i < r.Lines(); i++ {
		line, ok := r.Line(i)
		if !ok {
			t.Fatalf("Line(%d) failed", i)
		}
		s := line.String()
		if s == "" || s[len(s)-1] != '\n' {
			t.Errorf("Line(%d) = %q, want a newline-terminated line", i, s)
		}
	}
}
