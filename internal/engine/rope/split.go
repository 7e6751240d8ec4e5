package rope

// Substr returns the length characters starting at offset start.
// A range running past the end is clamped to the available text, and
// negative arguments are treated as zero. It never fails.
func (t Text) Substr(start, length int) Text {
	n := t.node()
	start = min(max(start, 0), n.length)
	length = min(max(length, 0), n.length-start)
	return Text{root: slice(n, start, start+length)}
}

// TakeLeft splits off the first count characters. It returns the kept
// prefix and the rest. If count exceeds the length, the prefix is the whole
// Text and the rest is empty.
func (t Text) TakeLeft(count int) (kept, rest Text) {
	n := t.Len()
	if count > n {
		return t, New()
	}
	count = max(count, 0)
	return t.Substr(0, count), t.Substr(count, n-count)
}

// TakeRight splits off the last count characters. The results are in
// content order: the rest of the Text first, then the kept suffix. If count
// exceeds the length, the rest is empty and the suffix is the whole Text.
func (t Text) TakeRight(count int) (rest, kept Text) {
	n := t.Len()
	if count > n {
		return New(), t
	}
	split := n - max(count, 0)
	return t.Substr(0, split), t.Substr(split, n-split)
}

// slice returns a tree holding the characters [start, end) of n.
// Requires 0 <= start <= end <= n.length.
// Subtrees covered entirely by the range are reused, not copied.
func slice(n *node, start, end int) *node {
	if start == 0 && end == n.length {
		return n
	}
	if start == end {
		return emptyLeaf
	}

	if n.isLeaf() {
		from := byteOffset(n.chunk, n.length, start)
		to := byteOffset(n.chunk, n.length, end)
		return newLeafN(n.chunk[from:to], end-start)
	}

	split := n.left.length
	if end <= split {
		return slice(n.left, start, end)
	}
	if start >= split {
		return slice(n.right, start-split, end-split)
	}
	return concat(slice(n.left, start, split), slice(n.right, 0, end-split))
}
