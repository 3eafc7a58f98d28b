// Package scanner provides the byte cursor used by the sidgen
// preprocessor. It encapsulates position and line tracking over an
// in-memory buffer, eliminating the need for the rewriter to carry
// its own index arithmetic.
package scanner

import "bytes"

// Scanner iterates byte-by-byte over an input buffer. The cursor is
// monotonically non-decreasing: there is no way to rewind, matching
// the single-pass design of the preprocessor.
type Scanner struct {
	src  []byte
	pos  int // index of the next unread byte
	line int
}

// New creates a Scanner for the given buffer. The buffer is never
// mutated: the scanner only reads from it.
func New(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Next consumes and returns the next byte, or (0, false) at end of
// input. Line tracking advances on newlines.
func (s *Scanner) Next() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
	}
	return ch, true
}

// Peek returns the next byte without consuming it, or (0, false) at
// end of input.
func (s *Scanner) Peek() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

// EOF reports whether the whole buffer has been consumed.
func (s *Scanner) EOF() bool { return s.pos >= len(s.src) }

// Pos returns the byte offset of the next unread byte.
func (s *Scanner) Pos() int { return s.pos }

// Line returns the current 1-based line number, for diagnostics.
func (s *Scanner) Line() int { return s.line }

// LookingAt checks if the unread input starts with the given prefix.
// Useful for multi-byte token detection without consuming anything on
// a mismatch.
func (s *Scanner) LookingAt(prefix string) bool {
	return bytes.HasPrefix(s.src[s.pos:], []byte(prefix))
}

// Skip advances past n bytes without returning them. Returns the
// number of bytes actually skipped (may be less than n at end of
// input).
func (s *Scanner) Skip(n int) int {
	skipped := 0
	for i := 0; i < n; i++ {
		if _, ok := s.Next(); !ok {
			break
		}
		skipped++
	}
	return skipped
}

// IsSpace reports whether ch is whitespace: space, tab, newline,
// vertical tab, form feed, or carriage return.
func IsSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsAlnum reports whether ch is an ASCII letter or digit.
func IsAlnum(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
