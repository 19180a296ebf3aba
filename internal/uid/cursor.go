package uid

import "fmt"

// Position is a 1-based line and column in the original text.
// Columns count bytes; CR, LF and CRLF each end a line.
type Position struct {
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// cursor walks a string forward while keeping line and column in sync.
// The scanner and the rewriter share it so both passes agree on coordinates.
type cursor struct {
	src  string
	off  int
	line int
	col  int
}

func newCursor(src string) *cursor {
	return &cursor{src: src, line: 1, col: 1}
}

func (c *cursor) pos() Position {
	return Position{Line: c.line, Column: c.col}
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the current byte, or 0 at end of input.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

func (c *cursor) hasPrefix(s string) bool {
	return len(c.src)-c.off >= len(s) && c.src[c.off:c.off+len(s)] == s
}

// advance consumes one logical character and returns the bytes it covered.
// A CRLF pair is a single line break and is returned whole.
func (c *cursor) advance() string {
	if c.eof() {
		return ""
	}
	start := c.off
	switch c.src[c.off] {
	case '\n':
		c.off++
		c.line++
		c.col = 1
	case '\r':
		c.off++
		if c.off < len(c.src) && c.src[c.off] == '\n' {
			c.off++
		}
		c.line++
		c.col = 1
	default:
		c.off++
		c.col++
	}
	return c.src[start:c.off]
}

// advanceN consumes n bytes that are known not to contain line breaks.
func (c *cursor) advanceN(n int) string {
	if c.off+n > len(c.src) {
		n = len(c.src) - c.off
	}
	s := c.src[c.off : c.off+n]
	c.off += n
	c.col += n
	return s
}

// rest returns the unread remainder of the input.
func (c *cursor) rest() string {
	return c.src[c.off:]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

// isNameByte reports whether b may appear in an element or attribute name.
// Everything that is not markup punctuation or whitespace is accepted; this is
// a tokenizer, not a well-formedness checker.
func isNameByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '<', '>', '/', '=', '"', '\'', '!', '?':
		return false
	}
	return true
}
