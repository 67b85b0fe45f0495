package main

import (
	"fmt"
	"os"

	"github.com/dimbata23/golang-lisp-interpreter/pkg/lexer"
)

// Prints each rune of the given file with its offset and the paren depth
// after it, stopping at a stray `)`.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: lexer <file>")
		os.Exit(2)
	}

	str, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := lexer.New(string(str))
	for {
		pos := s.Pos()
		r, ok := s.Advance()
		if !ok {
			break
		}
		fmt.Printf("%6d %3d %q\n", pos, s.Level(), r)
	}

	if !s.AtEOF() {
		fmt.Fprintf(os.Stderr, "unexpected `)` at byte %d\n", s.Pos())
		os.Exit(1)
	}
}
