package rope

import (
	"strings"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Text
		want bool
	}{
		{"both empty", New(), Text{}, true},
		{"same leaves", FromString("abc"), FromString("abc"), true},
		{"different leaves", FromString("abc"), FromString("abd"), false},
		{"different lengths", FromString("abc"), FromString("abcd"), false},
		{"same shape", FromString("a\nb\n"), FromString("a\nb\n"), true},
		{
			"different shapes",
			FromString("abc\ndef\n"),
			FromStrings([]string{"ab", "c\n", "d", "ef\n"}),
			true,
		},
		{
			"leaf against branch",
			FromString("ab\n").Concat(FromString("cd")),
			Text{root: newLeaf("ab\ncd")},
			true,
		},
		{"same length different newlines", FromString("a\nb"), FromString("a b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("reversed Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualIdentity(t *testing.T) {
	r := FromString(strings.Repeat("shared line\n", 50000))
	if !r.Equal(r) {
		t.Error("a Text should equal itself")
	}

	copyOf := r
	if copyOf.root != r.root || !copyOf.Equal(r) {
		t.Error("copies of a Text share the same tree")
	}

	// A derived text that reuses the right subtree compares equal to a
	// rebuilt one.
	_, tail := r.TakeLeft(12)
	if !tail.Equal(FromString(strings.Repeat("shared line\n", 49999))) {
		t.Error("tail mismatch")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "abc", "abc", 0},
		{"less", "abc", "abd", -1},
		{"greater", "abd", "abc", 1},
		{"prefix", "ab", "abc", -1},
		{"empty", "", "a", -1},
		{"both empty", "", "", 0},
		{"unicode order", "é", "z", 1},
		{"across lines", "a\nb\nc", "a\nb\nd", -1},
		{"long", strings.Repeat("x", 3000) + "a", strings.Repeat("x", 3000) + "b", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromString(tt.a)
			b := FromStrings(strings.SplitAfter(tt.b, "\n"))
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := b.Compare(a); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}
