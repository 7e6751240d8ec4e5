package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzFromString tests rope creation from arbitrary strings.
func FuzzFromString(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("hello\r\nworld")
	f.Add("日本語")
	f.Add("emoji 🎉 test")
	f.Add("\x00\x01\x02")
	f.Add("bad \xe2\x82 tail\n")

	f.Fuzz(func(t *testing.T, s string) {
		r := FromString(s)
		if want := strings.ToValidUTF8(s, "\uFFFD"); r.String() != want {
			t.Errorf("content mismatch")
		}
		if r.Len() != utf8.RuneCountInString(r.String()) {
			t.Errorf("length mismatch: got %d, want %d", r.Len(), utf8.RuneCountInString(r.String()))
		}
		checkInvariants(t, r)
	})
}

// FuzzConcat tests concatenation of arbitrary bytes, including sequences
// that are only valid UTF-8 when joined.
func FuzzConcat(f *testing.F) {
	f.Add("\xe2\x82", "\xac")
	f.Add("a\n", "b")
	f.Add("\xff", "\n\xfe")

	f.Fuzz(func(t *testing.T, a, b string) {
		r := FromString(a).Concat(FromString(b))
		s := r.String()
		if !utf8.ValidString(s) {
			t.Errorf("content %q is not valid UTF-8", s)
		}
		if r.Len() != utf8.RuneCountInString(s) {
			t.Errorf("Len() = %d, content has %d characters", r.Len(), utf8.RuneCountInString(s))
		}
		if utf8.ValidString(a) && utf8.ValidString(b) && s != a+b {
			t.Errorf("content %q, want %q", s, a+b)
		}
		checkInvariants(t, r)
	})
}

// FuzzInsert tests insert operations.
func FuzzInsert(f *testing.F) {
	f.Add("hello", 0, "x")
	f.Add("hello", 5, "x")
	f.Add("hello", 3, "world")
	f.Add("", 0, "test")
	f.Add("日本語", 1, "x")
	f.Add("a\nb\nc", 2, "\n\n")

	f.Fuzz(func(t *testing.T, initial string, index int, insert string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(insert) {
			return
		}

		runes := []rune(initial)
		index = min(max(index, 0), len(runes))

		result := FromString(initial).Insert(index, FromString(insert))

		expected := string(runes[:index]) + insert + string(runes[index:])
		if result.String() != expected {
			t.Errorf("insert mismatch at index %d", index)
		}
		checkInvariants(t, result)
	})
}

// FuzzDelete tests delete operations.
func FuzzDelete(f *testing.F) {
	f.Add("hello world", 0, 5)
	f.Add("hello world", 6, 5)
	f.Add("hello world", 5, 1)
	f.Add("日本語", 0, 1)
	f.Add("a\nb\nc\n", 1, 100)

	f.Fuzz(func(t *testing.T, initial string, index, count int) {
		if !utf8.ValidString(initial) || index < 0 || count < 0 {
			return
		}

		runes := []rune(initial)
		start := min(index, len(runes))
		end := start + min(count, len(runes)-start)

		result := FromString(initial).Delete(index, count)

		expected := string(runes[:start]) + string(runes[end:])
		if result.String() != expected {
			t.Errorf("delete mismatch for [%d, %d)", start, end)
		}
		checkInvariants(t, result)
	})
}

// FuzzLines tests line positions against a direct scan.
func FuzzLines(f *testing.F) {
	f.Add("a\nb\nc")
	f.Add("\n\n")
	f.Add("no newline")
	f.Add("日本\n語\n")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s).Rebalance()
		line := 0
		for i, c := range []rune(s) {
			if c != '\n' {
				continue
			}
			line++
			if line >= r.Lines() {
				break
			}
			pos, ok := r.LinePos(line)
			if !ok || pos != i+1 {
				t.Errorf("LinePos(%d) = %d, %v; want %d", line, pos, ok, i+1)
			}
		}
	})
}
