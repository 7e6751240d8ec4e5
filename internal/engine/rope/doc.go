// Package rope provides an immutable rope for storing and editing large texts.
//
// A Text is a binary tree whose leaves hold contiguous chunks of text and whose
// branches cache the length, depth and newline count of their subtree. Every
// operation that appears to modify a Text returns a new value; untouched
// subtrees are shared by reference with the original. Nodes are never mutated
// after creation, so a Text can be read, traversed and derived from by any
// number of goroutines without locking.
//
// Offsets, lengths and counts are measured in characters (runes), not bytes.
// Line numbers are zero-based and a line is terminated by '\n'.
//
// A Text always holds valid UTF-8. Input that is not valid UTF-8 (from
// FromString, FromStrings, a Builder or FromReader) has each run of invalid
// bytes replaced by U+FFFD when it enters the tree.
//
// Key features:
//   - O(depth) character and line-start lookups via cached aggregates
//   - Substring extraction that reuses fully covered subtrees
//   - Concatenation that coalesces small adjacent leaves
//   - Chunk boundaries aligned with line boundaries where possible
//
// Basic usage:
//
//	t := rope.FromString("Hello")
//	t = t.Concat(rope.FromString(" Joe!\n"))  // "Hello Joe!\n"
//	t = t.Insert(6, rope.FromString("dear ")) // "Hello dear Joe!\n"
//	t = t.Delete(0, 6)                        // "dear Joe!\n"
//	c, ok := t.CharAt(5)                      // 'J', true
//
// Concatenation does not rebalance the tree. Folding many small pieces into a
// Text one at a time can grow its depth linearly; call Rebalance to rebuild a
// shallow tree with the same content.
package rope
