package descent

import (
	"strconv"
	"unicode"
)

// Cursor is a read position over an input string. It skips whitespace, and it
// can return to any position it has previously reported through Snapshot.
// A Cursor is not safe for concurrent use.
type Cursor struct {
	src []rune
	pos int
	// trace, if non-nil, observes named rules as they return.
	trace TraceFunc
	// memo holds results of memoized rules by position.
	memo map[memoKey]memoEntry
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: []rune(src)}
}

// Next returns the next non-whitespace rune and advances past it. The second
// result is false at the end of the input.
func (c *Cursor) Next() (rune, bool) {
	for c.pos < len(c.src) {
		r := c.src[c.pos]
		c.pos++
		if !unicode.IsSpace(r) {
			return r, true
		}
	}
	return 0, false
}

// Snapshot returns the current position.
func (c *Cursor) Snapshot() int {
	return c.pos
}

// Rollback returns the cursor to a position previously obtained from Snapshot.
// Panics if mark could not have come from Snapshot.
func (c *Cursor) Rollback(mark int) {
	if mark < 0 || mark > len(c.src) {
		panic("descent: rollback to invalid position " + strconv.Itoa(mark))
	}
	c.pos = mark
}

// Done reports whether only whitespace remains. It does not move the cursor.
func (c *Cursor) Done() bool {
	mark := c.pos
	_, ok := c.Next()
	c.pos = mark
	return !ok
}

// Len returns the number of runes in the input, including whitespace.
func (c *Cursor) Len() int {
	return len(c.src)
}

// String shows the input with a caret at the cursor position.
func (c *Cursor) String() string {
	return string(c.src[:c.pos]) + "^" + string(c.src[c.pos:])
}
