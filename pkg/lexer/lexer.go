package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const eof rune = -1

// Scanner is a character stream over source text that keeps track of how
// many lists are open. A `)` that would close a list opened before the
// scanner was created reads as end of input, so a nested list can be read
// through a Sub scanner and then merged back.
type Scanner struct {
	input string // text being scanned
	pos   int    // current position in the text
	level int    // number of lists opened and not closed

	inString  bool
	escaped   bool // previous rune inside a string was a backslash
	inComment bool
}

// New returns a scanner positioned at the start of input.
func New(input string) *Scanner {
	return &Scanner{input: input}
}

func (s *Scanner) String() string {
	return fmt.Sprintf("scanner at %d (level %d)", s.pos, s.level)
}

// Pos is the byte offset of the next rune.
func (s *Scanner) Pos() int {
	return s.pos
}

// Level is the number of lists opened through this scanner and not closed.
func (s *Scanner) Level() int {
	return s.level
}

// AtEOF reports whether the underlying text is exhausted, as opposed to the
// scanner merely sitting on a closing paren it may not consume.
func (s *Scanner) AtEOF() bool {
	return s.pos >= len(s.input)
}

// Rest is the unconsumed part of the input.
func (s *Scanner) Rest() string {
	return s.input[s.pos:]
}

func (s *Scanner) decode() (rune, int) {
	if s.pos >= len(s.input) {
		return eof, 0
	}

	return utf8.DecodeRuneInString(s.input[s.pos:])
}

func (s *Scanner) inText() bool {
	return !s.inString && !s.inComment
}

// Peek returns the next rune without consuming it. It reports false at the
// end of input and on a `)` that would close a list this scanner never opened.
func (s *Scanner) Peek() (rune, bool) {
	r, _ := s.decode()
	if r == eof {
		return 0, false
	}

	if r == ')' && s.level == 0 && s.inText() {
		return 0, false
	}

	return r, true
}

// Advance consumes one rune, updating paren depth and string/comment state.
func (s *Scanner) Advance() (rune, bool) {
	if _, ok := s.Peek(); !ok {
		return 0, false
	}

	r, width := s.decode()
	s.pos += width

	switch {
	case s.inComment:
		if r == '\n' {
			s.inComment = false
		}

	case s.inString:
		switch {
		case s.escaped:
			s.escaped = false
		case r == '\\':
			s.escaped = true
		case r == '"':
			s.inString = false
		}

	default:
		switch r {
		case '"':
			s.inString = true
		case ';':
			s.inComment = true
		case '(':
			s.level++
		case ')':
			s.level--
		}
	}

	return r, true
}

// Accept consumes the next rune if it's from the valid set.
func (s *Scanner) Accept(valid string) bool {
	r, ok := s.Peek()
	if !ok || !strings.ContainsRune(valid, r) {
		return false
	}

	s.Advance()
	return true
}

// AcceptFunc consumes runes while pred holds and returns how many it took.
func (s *Scanner) AcceptFunc(pred func(rune) bool) int {
	n := 0
	for {
		r, ok := s.Peek()
		if !ok || !pred(r) {
			return n
		}
		s.Advance()
		n++
	}
}

// Sub returns a scanner over the same text starting at the current position.
// Its level starts at zero, so it stops at the `)` closing the current list.
func (s *Scanner) Sub() *Scanner {
	return &Scanner{
		input:     s.input,
		pos:       s.pos,
		inString:  s.inString,
		escaped:   s.escaped,
		inComment: s.inComment,
	}
}

// Merge adopts the position and depth of a scanner obtained from Sub.
// Merging a scanner over different text, or one behind s, panics.
func (s *Scanner) Merge(child *Scanner) {
	if child.input != s.input {
		panic("lexer: merging scanners over different input")
	}
	if child.pos < s.pos {
		panic(fmt.Sprintf("lexer: merging scanner at %d into scanner at %d", child.pos, s.pos))
	}

	s.pos = child.pos
	s.level += child.level
	s.inString = child.inString
	s.escaped = child.escaped
	s.inComment = child.inComment
}
