package rope

import (
	"strings"
	"unicode/utf8"
)

// chunk builds a tree holding s.
//
// The text is cut after every newline that is not its last character, so
// each leaf ends at a line boundary where possible. A line longer than
// LeafMax is halved by character count until every piece fits. The
// resulting leaves are joined pairwise, which keeps the tree depth
// logarithmic in the number of leaves.
func chunk(s string) *node {
	return joinBalanced(appendChunks(nil, validUTF8(s)))
}

// appendChunks appends the leaves for s to dst, in content order.
func appendChunks(dst []*node, s string) []*node {
	for len(s) > 0 {
		var line string
		i := strings.IndexByte(s, '\n')
		if i < 0 || i == len(s)-1 {
			line, s = s, ""
		} else {
			line, s = s[:i+1], s[i+1:]
		}
		dst = appendHalves(dst, line, utf8.RuneCountInString(line))
	}
	return dst
}

// appendHalves appends s as a single leaf, or as the leaves of its two
// halves when it is longer than LeafMax.
func appendHalves(dst []*node, s string, n int) []*node {
	if n <= LeafMax {
		return append(dst, newLeafN(s, n))
	}

	mid := n / 2
	b := byteOffset(s, n, mid)
	dst = appendHalves(dst, s[:b], mid)
	return appendHalves(dst, s[b:], n-mid)
}

// joinBalanced concatenates nodes in order, splitting the list in half at
// every level.
func joinBalanced(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return emptyLeaf
	case 1:
		return nodes[0]
	}

	mid := len(nodes) / 2
	return concat(joinBalanced(nodes[:mid]), joinBalanced(nodes[mid:]))
}

// conforms reports whether a leaf already satisfies the chunking policy:
// no longer than LeafMax and no newline before its last character.
func conforms(n *node) bool {
	if n.length > LeafMax {
		return false
	}
	i := strings.IndexByte(n.chunk, '\n')
	return i < 0 || i == len(n.chunk)-1
}

// normalize brings a leaf back into chunking discipline. Branches and
// conforming leaves are returned unchanged.
func normalize(n *node) *node {
	if !n.isLeaf() || conforms(n) {
		return n
	}
	return chunk(n.chunk)
}
