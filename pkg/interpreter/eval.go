package interpreter

import (
	"fmt"

	p "github.com/dimbata23/golang-lisp-interpreter/pkg/parser"
)

// Eval evaluates one expression. Any error abandons the whole expression;
// frames and stack entries pushed on the way are released before returning.
func (env *Environment) Eval(expr p.SExpr) (p.Atom, error) {
	switch ex := expr.(type) {

	case p.Ident:
		return env.LookupVar(string(ex))

	case p.Number, p.String, p.Nil, p.Quote, *p.Lambda, *p.Procedure:
		return ex.(p.Atom), nil

	case p.Cons:
		return env.evalApplication(ex)
	}

	return nil, fmt.Errorf("%w: cannot evaluate %v", ErrType, expr)
}

func (env *Environment) evalApplication(app p.Cons) (res p.Atom, err error) {
	fv, err := env.Eval(p.Unquote(app.Head))
	if err != nil {
		return nil, err
	}

	fun, isFun := fv.(p.Function)
	if !isFun {
		return nil, fmt.Errorf("%w: expected a function, got %s %v", ErrType, p.TypeName(fv), fv)
	}

	base := env.StackLen()
	defer func() {
		if err != nil {
			env.unwind(base)
		}
	}()

	argc, err := env.pushArgs(fun, app.Tail)
	if err != nil {
		return nil, err
	}

	if argc != fun.Arity() {
		return nil, fmt.Errorf("%w: expected %d arguments, but got %d in %v", ErrArity, fun.Arity(), argc, fun)
	}

	return env.apply(fun, argc)
}

// pushArgs walks the operand list, pushing each operand's value, or its
// quoted syntax for a lazy position, and returns how many it pushed.
func (env *Environment) pushArgs(fun p.Function, tail p.Atom) (int, error) {
	proc, _ := fun.(*p.Procedure)

	argc := 0
	for rest := p.Unquote(tail); ; argc++ {
		var slot p.Atom
		switch cell := rest.(type) {
		case p.Nil:
			return argc, nil
		case p.Cons:
			slot = cell.Head
			rest = p.Unquote(cell.Tail)
		default:
			return argc, fmt.Errorf("%w: malformed argument list ending in %v", ErrSyntax, rest)
		}

		if proc != nil && proc.IsLazy(argc) {
			env.PushStack(slot)
			continue
		}

		val, err := env.Eval(p.Unquote(slot))
		if err != nil {
			return argc, err
		}
		env.PushStack(val)
	}
}

// apply pops exactly argc operands off the stack and runs fun on them.
func (env *Environment) apply(fun p.Function, argc int) (p.Atom, error) {
	args := env.popArgs(argc)

	switch f := fun.(type) {
	case *p.Lambda:
		env.PushFrame()
		defer env.PopFrame()

		for i, name := range f.Params {
			env.BindVar(name, args[i])
		}

		return env.Eval(f.Body)

	case *p.Procedure:
		return f.Fn(env, args)
	}

	panic("unreachable")
}
