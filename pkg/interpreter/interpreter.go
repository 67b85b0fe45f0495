package interpreter

import (
	"errors"
	"fmt"
	"io"
	"os"

	p "github.com/dimbata23/golang-lisp-interpreter/pkg/parser"
)

type Status int

const (
	StatusOk Status = iota
	StatusParseError
	StatusEvalError
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusParseError:
		return "parse error"
	case StatusEvalError:
		return "evaluation error"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Interpreter evaluates programs against one Environment that persists
// across calls to Interpret.
type Interpreter struct {
	env   *Environment
	truth p.Atom
	out   io.Writer
	diag  io.Writer
	trace bool
}

type Option func(*Interpreter)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithDiagnostics sets where dbg and traces write. Defaults to os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(i *Interpreter) { i.diag = w }
}

// WithTrace writes the value of every top-level form to the diagnostic
// stream.
func WithTrace(on bool) Option {
	return func(i *Interpreter) { i.trace = on }
}

func NewInterpreter(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:   NewEnvironment(),
		truth: p.Sym("t"),
		out:   os.Stdout,
		diag:  os.Stderr,
	}
	for _, opt := range opts {
		opt(i)
	}

	addDefaultDefs(i.env, i.truth, i.out, i.diag)
	return i
}

func (i *Interpreter) Env() *Environment {
	return i.env
}

// True is the value predicates return for true.
func (i *Interpreter) True() p.Atom {
	return i.truth
}

// Interpret parses and evaluates the top-level forms of input in order and
// returns the value of the last one. It stops at the first error; forms
// before it keep their effects.
func (i *Interpreter) Interpret(input string) (p.Atom, error) {
	par := p.Parse(input)

	var res p.Atom = p.Nil{}
	for {
		expr, err := par.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}

		res, err = i.env.Eval(expr)
		if err != nil {
			return nil, err
		}

		if i.trace {
			fmt.Fprintf(i.diag, "%v => %v\n", expr, res)
		}
	}
}

// StatusOf classifies an error returned by Interpret.
func StatusOf(err error) Status {
	var perr *p.Error
	switch {
	case err == nil:
		return StatusOk
	case errors.As(err, &perr):
		return StatusParseError
	}

	return StatusEvalError
}
