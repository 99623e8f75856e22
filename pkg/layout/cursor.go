package layout

// Cursor is a read position over a byte buffer.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Seek moves the cursor to an absolute offset. Seeking past the end is
// allowed; the next Take reports the bounds error.
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

// Take returns the next n bytes and advances the cursor by n. The cursor
// advances even when the buffer is exhausted, so sibling fields keep their
// positions and can still be inspected.
func (c *Cursor) Take(n int) ([]byte, error) {
	start := c.pos
	c.pos += n
	if start < 0 || n < 0 || c.pos > len(c.buf) {
		return nil, &BoundsError{Offset: start, Need: n, Have: len(c.buf)}
	}
	return c.buf[start:c.pos], nil
}
