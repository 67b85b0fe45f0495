package interpreter

import (
	"fmt"

	p "github.com/dimbata23/golang-lisp-interpreter/pkg/parser"
)

// Environment holds the scope frames (global first, innermost last) and the
// value stack that carries operands from a call site to the called function.
// It is not safe for concurrent use.
type Environment struct {
	frames []map[string]p.Atom
	stack  []p.Atom
}

func NewEnvironment() *Environment {
	return &Environment{
		frames: []map[string]p.Atom{make(map[string]p.Atom)},
	}
}

func (env *Environment) PushFrame() {
	env.frames = append(env.frames, make(map[string]p.Atom))
}

func (env *Environment) PopFrame() {
	if len(env.frames) == 1 {
		panic("interpreter: popping the global frame")
	}

	env.frames[len(env.frames)-1] = nil
	env.frames = env.frames[:len(env.frames)-1]
}

// Depth is the number of frames, the global one included.
func (env *Environment) Depth() int {
	return len(env.frames)
}

// BindVar binds name in the innermost frame, replacing any earlier binding
// there.
func (env *Environment) BindVar(name string, val p.Atom) {
	env.frames[len(env.frames)-1][name] = val
}

// Bind makes Environment a parser.Context.
func (env *Environment) Bind(name string, val p.Atom) {
	env.BindVar(name, val)
}

func (env *Environment) LookupVar(name string) (p.Atom, error) {
	for i := len(env.frames) - 1; i >= 0; i-- {
		if val, ok := env.frames[i][name]; ok {
			return val, nil
		}
	}

	return nil, fmt.Errorf("%w: name '%s' was not defined", ErrUnbound, name)
}

func (env *Environment) PushStack(val p.Atom) {
	env.stack = append(env.stack, val)
}

func (env *Environment) PopStack() p.Atom {
	if len(env.stack) == 0 {
		panic("interpreter: popping an empty value stack")
	}

	val := env.stack[len(env.stack)-1]
	env.stack[len(env.stack)-1] = nil
	env.stack = env.stack[:len(env.stack)-1]

	return val
}

func (env *Environment) StackLen() int {
	return len(env.stack)
}

// popArgs pops n values and returns them in the order they were pushed.
func (env *Environment) popArgs(n int) []p.Atom {
	args := make([]p.Atom, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = env.PopStack()
	}

	return args
}

// unwind drops whatever was pushed above depth.
func (env *Environment) unwind(depth int) {
	for len(env.stack) > depth {
		env.PopStack()
	}
}

// RegisterExternalFun installs a native function in the global frame.
// Operands at the lazy positions (0-based) reach fn unevaluated.
func (env *Environment) RegisterExternalFun(name string, arity int, fn p.NativeFn, lazy ...int) {
	env.frames[0][name] = &p.Procedure{Name: name, Argc: arity, Lazy: lazy, Fn: fn}
}
