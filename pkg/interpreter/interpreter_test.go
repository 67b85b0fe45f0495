package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	p "github.com/dimbata23/golang-lisp-interpreter/pkg/parser"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, diag bytes.Buffer
	return NewInterpreter(WithOutput(&out), WithDiagnostics(&diag)), &out, &diag
}

func run(t *testing.T, i *Interpreter, src string) p.Atom {
	t.Helper()
	res, err := i.Interpret(src)
	if err != nil {
		t.Fatalf("Interpret(%q): %v", src, err)
	}
	if n := i.Env().StackLen(); n != 0 {
		t.Fatalf("Interpret(%q) left %d values on the stack", src, n)
	}
	return res
}

func runErr(t *testing.T, i *Interpreter, src string) error {
	t.Helper()
	_, err := i.Interpret(src)
	if err == nil {
		t.Fatalf("Interpret(%q) succeeded, want an error", src)
	}
	if n := i.Env().StackLen(); n != 0 {
		t.Fatalf("Interpret(%q) left %d values on the stack after an error", src, n)
	}
	if d := i.Env().Depth(); d != 1 {
		t.Fatalf("Interpret(%q) left %d frames after an error", src, d)
	}
	return err
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want p.Atom
	}{
		{"add", "(+ 1 2)", p.Number(3)},
		{"let then use", "(let x 5) (+ x 1)", p.Number(6)},
		{"immediate lambda", "((fn (a b) (+ a b)) 2 3)", p.Number(5)},
		{"if nil", "(if nil 'yes 'no)", p.Sym("no")},
		{"if t", "(if t 'yes 'no)", p.Sym("yes")},
		{"car of cons", "(car (cons 1 2))", p.Number(1)},
		{"cdr of cons", "(cdr (cons 1 2))", p.Number(2)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, _, _ := newTestInterpreter(t)
			got := run(t, i, c.src)
			if !p.Equal(got, c.want) {
				t.Fatalf("%s = %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestUnterminatedFormIsParseError(t *testing.T) {
	i, _, _ := newTestInterpreter(t)
	err := runErr(t, i, "(+ 1 2")

	var perr *p.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not a parse error", err)
	}
	if !strings.Contains(err.Error(), "end of input") {
		t.Fatalf("error %q does not mention end of input", err)
	}
	if StatusOf(err) != StatusParseError {
		t.Fatalf("StatusOf = %v", StatusOf(err))
	}
}

func TestPrograms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want p.Atom
	}{
		{"arithmetic", "(- (* 3 4) (/ 10 4))", p.Number(9.5)},
		{"quote is data", "'(a b)", p.Quote{Expr: p.List(p.Ident("a"), p.Ident("b"))}},
		{"eval quoted", "(eval '(+ 1 2))", p.Number(3)},
		{"car of list", "(car '(a b c))", p.Sym("a")},
		{"cdr of list", "(cdr '(a b c))", p.Quote{Expr: p.List(p.Ident("b"), p.Ident("c"))}},
		{"cdr to empty", "(cdr '(a))", p.Nil{}},
		{"car of number list", "(car '(7 8))", p.Number(7)},
		{"cons onto list", "(cons 0 '(1 2))", p.Quote{Expr: p.List(p.Number(0), p.Number(1), p.Number(2))}},
		{"cons then eval", "(eval (cons '+ '(1 2)))", p.Number(3)},
		{"eq numbers", "(eq 1 1)", p.Sym("t")},
		{"eq strings", `(eq "a" "a")`, p.Sym("t")},
		{"eq quotes", "(eq '(1 (2)) '(1 (2)))", p.Sym("t")},
		{"eq differs", "(eq 1 2)", p.Nil{}},
		{"= alias", "(= 'a 'a)", p.Sym("t")},
		{"comparison", "(< 1 2)", p.Sym("t")},
		{"comparison false", "(>= 1 2)", p.Nil{}},
		{"if on empty list", "(if '() 1 2)", p.Number(2)},
		{"if evaluates branch", "(if (eq 1 1) (+ 1 1) undefined)", p.Number(2)},
		{"quoted let name", "(let 'y 3) y", p.Number(3)},
		{"letfn recursion", `
(letfn fact (n)
  (if (< n 2)
      1
      (* n (fact (- n 1)))))
(fact 5)`, p.Number(120)},
		{"dynamic scope", `
(letfn get-x () x)
(letfn with-x (x) (get-x))
(with-x 42)`, p.Number(42)},
		{"zero params", "((fn () 'done))", p.Sym("done")},
		{"function is first class", "(let add (fn (a b) (+ a b))) (add 4 5)", p.Number(9)},
		{"empty program", "; only a comment\n", p.Nil{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, _, _ := newTestInterpreter(t)
			got := run(t, i, c.src)
			if !p.Equal(got, c.want) {
				t.Fatalf("%s = %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestEvaluationErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
		msg  string
	}{
		{"unbound", "(+ zork 1)", ErrUnbound, "zork"},
		{"not a function", "(1 2)", ErrType, "expected a function"},
		{"arithmetic type", `(+ 1 "2")`, ErrType, "number"},
		{"arity builtin", "(+ 1 2 3)", ErrArity, "expected 2 arguments, but got 3"},
		{"arity special form", "(if t 1)", ErrArity, "expected 3 arguments, but got 2"},
		{"arity lambda", "((fn (a) a))", ErrArity, "expected 1 arguments, but got 0"},
		{"let non-symbol", "(let 1 2)", ErrSyntax, "symbol"},
		{"fn bad params", "(fn (a 1) a)", ErrSyntax, "argument name"},
		{"fn params not a list", "(fn a a)", ErrSyntax, "argument list"},
		{"car of number", "(car 1)", ErrType, "expected a list"},
		{"car of empty list", "(car '())", ErrType, "expected a list"},
		{"eval unquoted", "(eval 1)", ErrType, "quoted"},
		{"improper call", "(eval (cons '+ 1))", ErrSyntax, "malformed argument list"},
		{"error in nested argument", "(+ 1 (+ 2 (car 3)))", ErrType, "car"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, _, _ := newTestInterpreter(t)
			err := runErr(t, i, c.src)
			if !errors.Is(err, c.want) {
				t.Fatalf("error %v is not %v", err, c.want)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Fatalf("error %q does not mention %q", err, c.msg)
			}
			if StatusOf(err) != StatusEvalError {
				t.Fatalf("StatusOf = %v", StatusOf(err))
			}
		})
	}
}

func TestArityMismatchNeverRunsBody(t *testing.T) {
	i, out, _ := newTestInterpreter(t)
	run(t, i, `(letfn noisy (a) (print "ran"))`)

	runErr(t, i, "(noisy 1 2)")
	runErr(t, i, "(noisy)")
	runErr(t, i, `(print "a" "b")`)

	if out.Len() != 0 {
		t.Fatalf("body ran on arity mismatch: %q", out.String())
	}
}

func TestScopeHygiene(t *testing.T) {
	i, _, _ := newTestInterpreter(t)
	run(t, i, "(letfn f (a) (let inner (+ a 1)))")

	if got := run(t, i, "(f 1)"); !p.Equal(got, p.Number(2)) {
		t.Fatalf("(f 1) = %v", got)
	}
	if err := runErr(t, i, "inner"); !errors.Is(err, ErrUnbound) {
		t.Fatalf("inner leaked out of the call: %v", err)
	}
	if err := runErr(t, i, "a"); !errors.Is(err, ErrUnbound) {
		t.Fatalf("parameter leaked out of the call: %v", err)
	}

	run(t, i, "(letfn g (a) (+ (let inner2 1) (car a)))")
	runErr(t, i, "(g 5)")
	if err := runErr(t, i, "inner2"); !errors.Is(err, ErrUnbound) {
		t.Fatalf("binding leaked after a failing call: %v", err)
	}
}

func TestFunctionsEqualOnlyThemselves(t *testing.T) {
	i, _, _ := newTestInterpreter(t)
	run(t, i, "(let f (fn (x) x)) (let g (fn (x) x))")

	if got := run(t, i, "(eq f f)"); !p.Equal(got, i.True()) {
		t.Fatalf("(eq f f) = %v", got)
	}
	if got := run(t, i, "(eq f g)"); !p.IsNil(got) {
		t.Fatalf("(eq f g) = %v", got)
	}
	if got := run(t, i, "(eq car car)"); !p.Equal(got, i.True()) {
		t.Fatalf("(eq car car) = %v", got)
	}
}

func TestStopsAtFirstError(t *testing.T) {
	i, out, _ := newTestInterpreter(t)
	runErr(t, i, `(print "one") (car 1) (print "two")`)

	if out.String() != "one\n" {
		t.Fatalf("output = %q, want only the form before the error", out.String())
	}
}

func TestPrintAndDbg(t *testing.T) {
	i, out, diag := newTestInterpreter(t)
	res := run(t, i, `(print "hi") (print '(1 "s")) (dbg 2.5)`)

	if !p.IsNil(res) {
		t.Fatalf("dbg returned %v", res)
	}
	if want := "hi\n(1 \"s\")\n"; out.String() != want {
		t.Fatalf("print wrote %q, want %q", out.String(), want)
	}
	if want := "[dbg] number: 2.5\n"; diag.String() != want {
		t.Fatalf("dbg wrote %q, want %q", diag.String(), want)
	}
}

func TestTrace(t *testing.T) {
	var diag bytes.Buffer
	i := NewInterpreter(WithDiagnostics(&diag), WithTrace(true))
	run(t, i, "(+ 1 2)")

	if want := "(+ 1 2) => 3\n"; diag.String() != want {
		t.Fatalf("trace = %q, want %q", diag.String(), want)
	}
}

func TestStateCarriesAcrossInterpret(t *testing.T) {
	i, _, _ := newTestInterpreter(t)
	run(t, i, "(let x 10)")
	if got := run(t, i, "(* x x)"); !p.Equal(got, p.Number(100)) {
		t.Fatalf("got %v", got)
	}
}
