package interpreter

import (
	"fmt"
	"io"

	p "github.com/dimbata23/golang-lisp-interpreter/pkg/parser"
)

// addDefaultDefs seeds the global frame. truth is the value comparisons
// return for true; out and diag receive print and dbg output.
func addDefaultDefs(env *Environment, truth p.Atom, out, diag io.Writer) {
	env.BindVar("t", truth)
	env.BindVar("nil", p.Nil{})

	env.RegisterExternalFun("let", 2, procLet, 0)
	env.RegisterExternalFun("fn", 2, procFn, 0, 1)
	env.RegisterExternalFun("letfn", 3, procLetFn, 0, 1, 2)
	env.RegisterExternalFun("if", 3, procIf, 1, 2)
	env.RegisterExternalFun("eval", 1, procEval)

	env.RegisterExternalFun("cons", 2, procCons)
	env.RegisterExternalFun("car", 1, procCar)
	env.RegisterExternalFun("cdr", 1, procCdr)

	eq := procEq(truth)
	env.RegisterExternalFun("eq", 2, eq)
	env.RegisterExternalFun("=", 2, eq)

	env.RegisterExternalFun("+", 2, procArith("+", func(a, b float64) float64 { return a + b }))
	env.RegisterExternalFun("-", 2, procArith("-", func(a, b float64) float64 { return a - b }))
	env.RegisterExternalFun("*", 2, procArith("*", func(a, b float64) float64 { return a * b }))
	env.RegisterExternalFun("/", 2, procArith("/", func(a, b float64) float64 { return a / b }))

	env.RegisterExternalFun("<", 2, procComp("<", truth, less))
	env.RegisterExternalFun("<=", 2, procComp("<=", truth, lessEq))
	env.RegisterExternalFun(">", 2, procComp(">", truth, greater))
	env.RegisterExternalFun(">=", 2, procComp(">=", truth, greaterEq))

	env.RegisterExternalFun("print", 1, procPrint(out))
	env.RegisterExternalFun("dbg", 1, procDbg(diag))
}

// symbolName accepts a bare or a quoted symbol in syntax position.
func symbolName(syntax p.SExpr) (string, bool) {
	if q, isQuote := syntax.(p.Quote); isQuote {
		syntax = q.Expr
	}

	id, isIdent := syntax.(p.Ident)
	return string(id), isIdent
}

func procLet(ctx p.Context, args []p.Atom) (p.Atom, error) {
	name, ok := symbolName(p.Unquote(args[0]))
	if !ok {
		return nil, fmt.Errorf("%w: let expected a symbol, got %v", ErrSyntax, p.Unquote(args[0]))
	}

	ctx.Bind(name, args[1])
	return args[1], nil
}

func makeLambda(params, body p.Atom) (*p.Lambda, error) {
	syntax := p.Unquote(params)
	if q, isQuote := syntax.(p.Quote); isQuote {
		syntax = q.Expr
	}

	elems, ok := p.Elements(syntax)
	if !ok {
		return nil, fmt.Errorf("%w: expected an argument list, got %v", ErrSyntax, syntax)
	}

	names := make([]string, 0, len(elems))
	for _, elem := range elems {
		name, isIdent := elem.(p.Ident)
		if !isIdent {
			return nil, fmt.Errorf("%w: expected an argument name, got %v", ErrSyntax, elem)
		}
		names = append(names, string(name))
	}

	if _, isQuote := body.(p.Quote); !isQuote {
		return nil, fmt.Errorf("%w: expected a function body, got %v", ErrSyntax, body)
	}

	return &p.Lambda{Params: names, Body: p.Unquote(body)}, nil
}

func procFn(_ p.Context, args []p.Atom) (p.Atom, error) {
	return makeLambda(args[0], args[1])
}

func procLetFn(ctx p.Context, args []p.Atom) (p.Atom, error) {
	name, ok := symbolName(p.Unquote(args[0]))
	if !ok {
		return nil, fmt.Errorf("%w: letfn expected a symbol, got %v", ErrSyntax, p.Unquote(args[0]))
	}

	lambda, err := makeLambda(args[1], args[2])
	if err != nil {
		return nil, err
	}

	ctx.Bind(name, lambda)
	return lambda, nil
}

func procIf(ctx p.Context, args []p.Atom) (p.Atom, error) {
	for _, branch := range args[1:] {
		if _, isQuote := branch.(p.Quote); !isQuote {
			return nil, fmt.Errorf("%w: if expected a quoted branch, got %v", ErrSyntax, branch)
		}
	}

	if p.IsNil(args[0]) {
		return ctx.Eval(p.Unquote(args[2]))
	}

	return ctx.Eval(p.Unquote(args[1]))
}

func procEval(ctx p.Context, args []p.Atom) (p.Atom, error) {
	q, isQuote := args[0].(p.Quote)
	if !isQuote {
		return nil, fmt.Errorf("%w: eval expected a quoted expression, got %v", ErrType, args[0])
	}

	return ctx.Eval(q.Expr)
}

func procCons(_ p.Context, args []p.Atom) (p.Atom, error) {
	return p.Quote{Expr: p.Cons{Head: p.Slot(args[0]), Tail: p.Slot(args[1])}}, nil
}

func pair(name string, val p.Atom) (p.Cons, error) {
	if q, isQuote := val.(p.Quote); isQuote {
		if cell, isCons := q.Expr.(p.Cons); isCons {
			return cell, nil
		}
	}

	return p.Cons{}, fmt.Errorf("%w: %s expected a list, got %s %v", ErrType, name, p.TypeName(val), val)
}

func procCar(_ p.Context, args []p.Atom) (p.Atom, error) {
	cell, err := pair("car", args[0])
	if err != nil {
		return nil, err
	}

	return p.Datum(cell.Head), nil
}

func procCdr(_ p.Context, args []p.Atom) (p.Atom, error) {
	cell, err := pair("cdr", args[0])
	if err != nil {
		return nil, err
	}

	return p.Datum(cell.Tail), nil
}

func procEq(truth p.Atom) p.NativeFn {
	return func(_ p.Context, args []p.Atom) (p.Atom, error) {
		if p.Equal(args[0], args[1]) {
			return truth, nil
		}

		return p.Nil{}, nil
	}
}

func numbers(op string, args []p.Atom) (float64, float64, error) {
	lhs, lok := args[0].(p.Number)
	rhs, rok := args[1].(p.Number)
	if !lok || !rok {
		return 0, 0, fmt.Errorf("%w: expected two numbers in operation '%s', got %s and %s",
			ErrType, op, p.TypeName(args[0]), p.TypeName(args[1]))
	}

	return float64(lhs), float64(rhs), nil
}

func procArith(op string, fn func(a, b float64) float64) p.NativeFn {
	return func(_ p.Context, args []p.Atom) (p.Atom, error) {
		lhs, rhs, err := numbers(op, args)
		if err != nil {
			return nil, err
		}

		return p.Number(fn(lhs, rhs)), nil
	}
}

func less(lhs, rhs float64) bool      { return lhs < rhs }
func lessEq(lhs, rhs float64) bool    { return lhs <= rhs }
func greater(lhs, rhs float64) bool   { return lhs > rhs }
func greaterEq(lhs, rhs float64) bool { return lhs >= rhs }

func procComp(op string, truth p.Atom, comp func(lhs, rhs float64) bool) p.NativeFn {
	return func(_ p.Context, args []p.Atom) (p.Atom, error) {
		lhs, rhs, err := numbers(op, args)
		if err != nil {
			return nil, err
		}

		if comp(lhs, rhs) {
			return truth, nil
		}

		return p.Nil{}, nil
	}
}

func procPrint(out io.Writer) p.NativeFn {
	return func(_ p.Context, args []p.Atom) (p.Atom, error) {
		fmt.Fprintln(out, p.Display(args[0]))
		return p.Nil{}, nil
	}
}

func procDbg(diag io.Writer) p.NativeFn {
	return func(_ p.Context, args []p.Atom) (p.Atom, error) {
		fmt.Fprintf(diag, "[dbg] %s: %v\n", p.TypeName(args[0]), args[0])
		return p.Nil{}, nil
	}
}
