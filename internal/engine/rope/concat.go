package rope

import "strings"

// concat returns a tree holding the text of left followed by right.
// Neither argument is modified; subtrees are shared wherever possible.
func concat(left, right *node) *node {
	left, right = normalize(left), normalize(right)
	if left.length == 0 {
		return right
	}
	if right.length == 0 {
		return left
	}

	if right.isLeaf() {
		if left.isLeaf() && canMerge(left, right) {
			return mergeLeaves(left, right)
		}
		// Fold the incoming leaf into the rightmost leaf of the left branch
		// and leave the rest of that branch untouched.
		if !left.isLeaf() && left.right.isLeaf() && canMerge(left.right, right) {
			return concat(left.left, mergeLeaves(left.right, right))
		}
	}

	return newBranch(left, right)
}

// canMerge reports whether two adjacent leaves may be coalesced. A leaf
// ending with a newline is never extended, so leaf boundaries stay on line
// boundaries.
func canMerge(left, right *node) bool {
	return left.length+right.length < LeafMax && !strings.HasSuffix(left.chunk, "\n")
}

// mergeLeaves creates a single leaf holding both chunks.
func mergeLeaves(left, right *node) *node {
	return &node{
		chunk:  left.chunk + right.chunk,
		length: left.length + right.length,
		lines:  left.lines + right.lines,
	}
}
