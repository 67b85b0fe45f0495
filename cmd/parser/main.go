package main

import (
	"fmt"
	"os"

	"github.com/dimbata23/golang-lisp-interpreter/pkg/parser"
)

// Prints every top-level form of the given file as the reader sees it.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: parser <file>")
		os.Exit(2)
	}

	str, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	forms, err := parser.ParseString(string(str))
	for _, expr := range forms {
		fmt.Println(expr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
