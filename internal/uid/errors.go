package uid

import (
	"fmt"
)

// MalformedDocumentError reports text the scanner could not tokenize as markup.
// It aborts processing of that file only.
type MalformedDocumentError struct {
	File     string   // Path of the offending file (empty when unknown)
	Position Position // Where tokenizing stopped
	Message  string   // Primary error message
	Hint     string   // Actionable suggestion, optional
}

// Error implements the error interface with location and hint.
func (e *MalformedDocumentError) Error() string {
	location := e.File
	if location == "" {
		location = "document"
	}
	msg := fmt.Sprintf("malformed markup in %s (line %d, col %d): %s", location, e.Position.Line, e.Position.Column, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// RewriteSynchronizationError reports that the rewriter's replay of recorded
// positions diverged from the text, for example because the file changed
// between scanning and rewriting. No output is produced when it occurs.
type RewriteSynchronizationError struct {
	File     string
	Position Position // Cursor position at the point of divergence
	Expected string
	Found    string
}

// Error implements the error interface.
func (e *RewriteSynchronizationError) Error() string {
	location := e.File
	if location == "" {
		location = "document"
	}
	return fmt.Sprintf("rewrite lost synchronization in %s at line %d, col %d: expected %s, found %s",
		location, e.Position.Line, e.Position.Column, e.Expected, e.Found)
}

func malformed(pos Position, format string, args ...interface{}) *MalformedDocumentError {
	return &MalformedDocumentError{Position: pos, Message: fmt.Sprintf(format, args...)}
}

func describe(c *cursor) string {
	if c.eof() {
		return "end of input"
	}
	switch b := c.peek(); b {
	case '\n', '\r':
		return "end of line"
	default:
		return fmt.Sprintf("%q", rune(b))
	}
}

func desync(c *cursor, expected string) *RewriteSynchronizationError {
	return &RewriteSynchronizationError{Position: c.pos(), Expected: expected, Found: describe(c)}
}
