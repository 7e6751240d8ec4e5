package rope

import "strings"

// Equal reports whether t and other hold the same text.
// Two values sharing the same tree are equal without being walked.
func (t Text) Equal(other Text) bool {
	return equalNodes(t.node(), other.node())
}

// Compare returns an integer comparing t and other by content, character by
// character. The result is 0 if t == other, -1 if t < other and +1 if
// t > other.
func (t Text) Compare(other Text) int {
	a, b := t.node(), other.node()
	if a == b {
		return 0
	}
	return compareNodes(a, b)
}

func equalNodes(a, b *node) bool {
	if a == b {
		return true
	}
	if a.length != b.length || a.lines != b.lines {
		return false
	}

	switch {
	case a.isLeaf() && b.isLeaf():
		return a.chunk == b.chunk
	case !a.isLeaf() && !b.isLeaf() && a.left.length == b.left.length:
		// Same split point: compare side by side so shared subtrees
		// short-circuit.
		return equalNodes(a.left, b.left) && equalNodes(a.right, b.right)
	}
	return compareNodes(a, b) == 0
}

// compareNodes compares the text of two subtrees chunk by chunk.
// Byte order on UTF-8 is character order.
func compareNodes(a, b *node) int {
	ia, ib := newChunkIterator(a), newChunkIterator(b)
	var ca, cb string

	for {
		if ca == "" && ia.Next() {
			ca = ia.Chunk()
		}
		if cb == "" && ib.Next() {
			cb = ib.Chunk()
		}

		switch {
		case ca == "" && cb == "":
			return 0
		case ca == "":
			return -1
		case cb == "":
			return 1
		}

		k := min(len(ca), len(cb))
		if c := strings.Compare(ca[:k], cb[:k]); c != 0 {
			return c
		}
		ca, cb = ca[k:], cb[k:]
	}
}
