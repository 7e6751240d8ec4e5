package rope

import (
	"io"
	"strings"
)

// Text is an immutable rope.
// Operations return new Text values; the original is never modified.
// The zero value is an empty Text ready to use.
type Text struct {
	root *node
}

// New creates an empty Text.
func New() Text {
	return Text{root: emptyLeaf}
}

// FromString creates a Text holding s.
//
// Invalid UTF-8 in s is replaced by U+FFFD, one per run of bad bytes.
// The leaves are joined pairwise, so the tree has logarithmic depth from the
// start. Text grown through Concat gets no such balancing; see Rebalance.
func FromString(s string) Text {
	return Text{root: chunk(s)}
}

// FromRunes creates a Text holding the given characters.
// Surrogate halves and values above unicode.MaxRune are not characters and
// are stored as U+FFFD, so Len still equals len(rs) but such runes do not
// survive the round trip.
func FromRunes(rs []rune) Text {
	return FromString(string(rs))
}

// FromStrings concatenates the pieces in order, one Concat per piece.
// Small pieces coalesce into shared leaves, but every newline-terminated
// piece adds a level to the tree; call Rebalance on the result if it is
// going to be queried heavily.
func FromStrings(pieces []string) Text {
	t := New()
	for _, p := range pieces {
		t = t.Concat(Text{root: newLeaf(p)})
	}
	return t
}

// node returns the root, mapping the zero Text to the empty leaf.
func (t Text) node() *node {
	if t.root == nil {
		return emptyLeaf
	}
	return t.root
}

// Len returns the number of characters.
func (t Text) Len() int {
	return t.node().length
}

// Lines returns the number of newline characters.
func (t Text) Lines() int {
	return t.node().lines
}

// Depth returns the height of the tree; a single leaf has depth 0.
// Useful for debugging and testing balance.
func (t Text) Depth() int {
	return t.node().depth
}

// IsEmpty returns true if the Text contains no characters.
func (t Text) IsEmpty() bool {
	return t.Len() == 0
}

// String returns the full text as a string.
// Use sparingly for large texts.
func (t Text) String() string {
	n := t.node()
	if n.isLeaf() {
		return n.chunk
	}

	var sb strings.Builder
	n.appendTo(&sb)
	return sb.String()
}

// WriteTo writes the text to w chunk by chunk.
// It implements io.WriterTo.
func (t Text) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := t.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Chunk())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CharAt returns the character at offset i.
// Returns 0 and false if i is out of range.
func (t Text) CharAt(i int) (rune, bool) {
	n := t.node()
	if i < 0 || i >= n.length {
		return 0, false
	}
	return n.charAt(i), true
}

// Concat returns a Text holding t followed by other.
// Small adjacent leaves are coalesced; everything else is shared.
func (t Text) Concat(other Text) Text {
	return Text{root: concat(t.node(), other.node())}
}

// Rebalance returns a Text with the same content whose tree is rebuilt
// from its leaves with logarithmic depth. Concat never does this on its
// own.
func (t Text) Rebalance() Text {
	n := t.node()
	if n.isLeaf() {
		return Text{root: normalize(n)}
	}

	leaves := make([]*node, 0, 64)
	stack := []*node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.isLeaf() {
			leaves = append(leaves, top)
			continue
		}
		stack = append(stack, top.right, top.left)
	}
	return Text{root: joinBalanced(leaves)}
}
