package rope

import (
	"strings"
	"unicode/utf8"
)

// LeafMax is the coalescing threshold in characters. The chunker splits
// leaves longer than this, and concatenation never merges two leaves whose
// combined length would reach it.
const LeafMax = 1000

// node is a node of the rope tree.
// Leaves (left == nil) hold a chunk of text.
// Branches hold two non-empty children.
// All fields are set at creation and never change afterwards.
type node struct {
	left, right *node
	chunk       string

	length int // characters in the subtree
	depth  int // 0 for leaves
	lines  int // newlines in the subtree
}

// emptyLeaf is the canonical empty node.
var emptyLeaf = &node{}

// newLeaf creates a leaf holding s. Invalid UTF-8 is replaced first, see
// validUTF8.
func newLeaf(s string) *node {
	s = validUTF8(s)
	return newLeafN(s, utf8.RuneCountInString(s))
}

// validUTF8 replaces each run of invalid bytes in s with U+FFFD.
// Every leaf must hold valid UTF-8: leaf character counts are added when
// leaves merge, and that sum is only right if no multi-byte sequence can be
// completed across a leaf boundary. Valid input is returned as is.
func validUTF8(s string) string {
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

// newLeafN creates a leaf holding s, whose character count is already known.
func newLeafN(s string, n int) *node {
	if n == 0 {
		return emptyLeaf
	}
	return &node{
		chunk:  s,
		length: n,
		lines:  strings.Count(s, "\n"),
	}
}

// newBranch creates a branch over two non-empty subtrees.
func newBranch(left, right *node) *node {
	return &node{
		left:   left,
		right:  right,
		length: left.length + right.length,
		depth:  max(left.depth, right.depth) + 1,
		lines:  left.lines + right.lines,
	}
}

// isLeaf returns true if the node holds a chunk.
func (n *node) isLeaf() bool {
	return n.left == nil
}

// charAt returns the character at offset i, which must be in range.
func (n *node) charAt(i int) rune {
	for !n.isLeaf() {
		if i < n.left.length {
			n = n.left
		} else {
			i -= n.left.length
			n = n.right
		}
	}
	if n.length == len(n.chunk) {
		return rune(n.chunk[i])
	}
	r, _ := utf8.DecodeRuneInString(n.chunk[byteOffset(n.chunk, n.length, i):])
	return r
}

// lineStart returns the offset just past the k-th newline of the subtree.
// Requires 1 <= k <= n.lines.
func (n *node) lineStart(k int) int {
	offset := 0
	for !n.isLeaf() {
		if k <= n.left.lines {
			n = n.left
		} else {
			k -= n.left.lines
			offset += n.left.length
			n = n.right
		}
	}

	i := 0
	for _, r := range n.chunk {
		i++
		if r == '\n' {
			k--
			if k == 0 {
				break
			}
		}
	}
	return offset + i
}

// appendTo writes the text of the subtree to sb.
func (n *node) appendTo(sb *strings.Builder) {
	it := newChunkIterator(n)
	for it.Next() {
		sb.WriteString(it.Chunk())
	}
}

// byteOffset returns the byte index of the i-th character of s, where n is
// the character count of s. Offsets past the end map to len(s).
func byteOffset(s string, n, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= n {
		return len(s)
	}
	if n == len(s) {
		// ASCII
		return i
	}

	k := 0
	for b := range s {
		if k == i {
			return b
		}
		k++
	}
	return len(s)
}
