package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Error is a parse error. Offset is a byte offset into Src; the line and
// column are only worked out when the error is printed.
type Error struct {
	Src    string
	Offset int
	Msg    string

	// Incomplete is set when the input ended while more was expected.
	Incomplete bool
}

func (e *Error) Error() string {
	line, col := e.Position()
	return fmt.Sprintf("%s at %d:%d", e.Msg, line, col)
}

// Position returns the 1-based line and column (in runes) of the error.
func (e *Error) Position() (line, col int) {
	line, col = 1, 1
	for i, r := range e.Src {
		if i >= e.Offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return line, col
}

// IsIncomplete reports whether err is a parse error caused by input ending
// too early, i.e. more text could still make it parse.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}

func runeAt(src string, offset int) string {
	if offset >= len(src) {
		return "end of input"
	}

	r, _ := utf8.DecodeRuneInString(src[offset:])
	return fmt.Sprintf("%q", r)
}
