package rope

import "strings"

// ChunkIterator iterates over the leaf chunks of a Text in content order.
// It is single-pass; call Chunks again to start over.
type ChunkIterator struct {
	stack []*node
	chunk string
}

// Chunks returns an iterator over the non-empty chunks of the Text.
func (t Text) Chunks() *ChunkIterator {
	return newChunkIterator(t.node())
}

func newChunkIterator(n *node) *ChunkIterator {
	it := &ChunkIterator{stack: make([]*node, 0, n.depth+1)}
	it.stack = append(it.stack, n)
	return it
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if n.isLeaf() {
			if n.length == 0 {
				continue
			}
			it.chunk = n.chunk
			return true
		}
		// Right first so the left child is visited next.
		it.stack = append(it.stack, n.right, n.left)
	}

	it.chunk = ""
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() string {
	return it.chunk
}

// LineIterator reassembles the chunks of a Text into lines.
type LineIterator struct {
	chunks *ChunkIterator
	rest   string // unconsumed part of the current chunk
	buf    strings.Builder
	line   string
}

// LineIter returns an iterator over the lines of the Text. Each line keeps
// its trailing newline; a final line without one is yielded as is.
func (t Text) LineIter() *LineIterator {
	return &LineIterator{chunks: t.Chunks()}
}

// Next advances to the next line.
// Returns true if there is a line, false if iteration is complete.
func (it *LineIterator) Next() bool {
	for {
		if it.rest == "" {
			if !it.chunks.Next() {
				return it.flush()
			}
			it.rest = it.chunks.Chunk()
		}

		i := strings.IndexByte(it.rest, '\n')
		if i < 0 {
			it.buf.WriteString(it.rest)
			it.rest = ""
			continue
		}

		if it.buf.Len() == 0 && i == len(it.rest)-1 {
			// The chunk is exactly one line.
			it.line, it.rest = it.rest, ""
			return true
		}
		it.buf.WriteString(it.rest[:i+1])
		it.rest = it.rest[i+1:]
		return it.flush()
	}
}

// flush moves the buffered text into the current line.
func (it *LineIterator) flush() bool {
	if it.buf.Len() == 0 {
		it.line = ""
		return false
	}
	it.line = it.buf.String()
	it.buf.Reset()
	return true
}

// Text returns the current line.
func (it *LineIterator) Text() string {
	return it.line
}
