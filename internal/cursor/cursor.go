// Package cursor provides a byte reader with one character of lookahead and line tracking.
package cursor

import "strings"

// EOF is returned by Next once the input is exhausted.
const EOF = -1

// Cursor reads an in-memory input one byte at a time. The byte returned by the last
// call to Next stays current until the following Next, which allows a single Pushback.
type Cursor struct {
	input    []byte
	pos      int
	consumed bool
	canPush  bool
	line     int
}

// New creates a Cursor positioned before the first byte of input.
func New(input []byte) *Cursor {
	return &Cursor{
		input: input,
		line:  1,
	}
}

// Next advances past the previously returned byte and returns the next one, or EOF.
func (c *Cursor) Next() int {
	if c.consumed {
		if c.input[c.pos] == '\n' {
			c.line++
		}
		c.pos++
	}
	c.canPush = true

	if c.pos >= len(c.input) {
		c.consumed = false
		return EOF
	}

	c.consumed = true
	return int(c.input[c.pos])
}

// Pushback makes the byte returned by the last Next available again. It panics when
// called twice without an intervening Next, or before Next was ever called.
func (c *Cursor) Pushback() {
	if !c.canPush {
		panic("cursor: Pushback without a preceding Next")
	}
	c.canPush = false
	c.consumed = false
}

// SkipWhitespace consumes space, tab, newline and carriage return.
func (c *Cursor) SkipWhitespace() {
	for {
		ch := c.Next()
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			c.Pushback()
			return
		}
	}
}

// Expect skips whitespace and consumes ch if it is the next byte.
func (c *Cursor) Expect(ch byte) bool {
	c.SkipWhitespace()
	if c.Next() != int(ch) {
		c.Pushback()
		return false
	}
	return true
}

// Match consumes literal byte by byte. On the first mismatch the offending byte is
// pushed back; the bytes matched before it stay consumed.
func (c *Cursor) Match(literal string) bool {
	for i := 0; i < len(literal); i++ {
		if c.Next() != int(literal[i]) {
			c.Pushback()
			return false
		}
	}
	return true
}

// Line returns the 1-based line of the current position.
func (c *Cursor) Line() int {
	return c.line
}

// Offset returns the absolute index of the next unread byte.
func (c *Cursor) Offset() int {
	if c.consumed {
		return c.pos + 1
	}
	return c.pos
}

// RestOfLine consumes input up to the end of the current line and returns it
// without control characters.
func (c *Cursor) RestOfLine() string {
	var sb strings.Builder
	for {
		ch := c.Next()
		if ch == EOF || ch == '\n' {
			return sb.String()
		}
		if ch >= ' ' {
			sb.WriteByte(byte(ch))
		}
	}
}
