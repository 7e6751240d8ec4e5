package rope

import (
	"io"
	"strings"
)

// readBufferSize is the read size used by ReadFrom.
const readBufferSize = 64 * 1024

// Builder accumulates text and chunks it into a Text when Build is called.
// Leaves of the built Text share memory with the accumulated string.
// The zero value is ready to use.
type Builder struct {
	buf strings.Builder
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	return b.buf.WriteString(s)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	return b.buf.WriteByte(c)
}

// WriteRune appends a single character.
func (b *Builder) WriteRune(r rune) (int, error) {
	return b.buf.WriteRune(r)
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readBufferSize)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.buf.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.buf.Reset()
}

// Build creates the Text from the accumulated data and resets the builder.
func (b *Builder) Build() Text {
	t := FromString(b.buf.String())
	b.Reset()
	return t
}

// FromReader creates a Text from everything r produces.
func FromReader(r io.Reader) (Text, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Text{}, err
	}
	return b.Build(), nil
}
