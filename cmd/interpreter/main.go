package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dimbata23/golang-lisp-interpreter/pkg/interpreter"
)

const appName = "interpreter"

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-v] [-i] <file>

Evaluates every top-level form of <file> in order and stops at the first
error. With -i a REPL starts afterwards; the file is then optional.

`, appName)
	flag.PrintDefaults()
}

func main() {
	trace := flag.Bool("v", false, "print the value of every top-level form to stderr")
	interactive := flag.Bool("i", false, "start a REPL after loading <file>")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 1 || (flag.NArg() == 0 && !*interactive) {
		usage()
		os.Exit(2)
	}

	i := interpreter.NewInterpreter(interpreter.WithTrace(*trace))

	if flag.NArg() == 1 {
		os.Exit(runFile(i, flag.Arg(0), *interactive))
	}

	os.Exit(repl(i))
}

func runFile(i *interpreter.Interpreter, path string, interactive bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	if _, err := i.Interpret(string(src)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", path, interpreter.StatusOf(err), err)
		return 1
	}

	if interactive {
		return repl(i)
	}

	return 0
}
