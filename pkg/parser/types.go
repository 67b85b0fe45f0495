package parser

// SExpr is either an Atom or a Cons pair.
type SExpr interface {
	String() string
	sexpr()
}

// Atom is the smallest value unit: a literal, a symbol, a quoted
// expression, a function or nil.
type Atom interface {
	SExpr
	atom()
}

type String string

type Number float64

// Ident is a symbol name. Evaluating it looks the name up.
type Ident string

// Nil is the empty list and the false value.
type Nil struct{}

// Quote marks an expression as data. Quoting also wraps every element and
// tail slot of a syntactic list.
type Quote struct {
	Expr SExpr
}

// Cons is a pair. Lists are chains of Cons cells whose slots are quoted.
type Cons struct {
	Head Atom
	Tail Atom
}

// Context is what the evaluator hands to native routines.
type Context interface {
	Eval(expr SExpr) (Atom, error)
	Bind(name string, val Atom)
}

type NativeFn func(ctx Context, args []Atom) (Atom, error)

// Function is implemented by *Lambda and *Procedure only. Functions are
// equal only to themselves.
type Function interface {
	Atom
	Arity() int
	function()
}

// Lambda is a user-defined function. It captures no environment: free
// names in Body resolve against whatever scope is active at call time.
type Lambda struct {
	Params []string
	Body   SExpr
}

// Procedure is a native function. Operand positions listed in Lazy are
// passed to Fn as their quoted, unevaluated syntax.
type Procedure struct {
	Name string
	Argc int
	Lazy []int
	Fn   NativeFn
}

func (String) sexpr()     {}
func (Number) sexpr()     {}
func (Ident) sexpr()      {}
func (Nil) sexpr()        {}
func (Quote) sexpr()      {}
func (Cons) sexpr()       {}
func (*Lambda) sexpr()    {}
func (*Procedure) sexpr() {}

func (String) atom()     {}
func (Number) atom()     {}
func (Ident) atom()      {}
func (Nil) atom()        {}
func (Quote) atom()      {}
func (*Lambda) atom()    {}
func (*Procedure) atom() {}

func (*Lambda) function()    {}
func (*Procedure) function() {}

func (l *Lambda) Arity() int {
	return len(l.Params)
}

func (p *Procedure) Arity() int {
	return p.Argc
}

// IsLazy reports whether operand i is passed unevaluated.
func (p *Procedure) IsLazy(i int) bool {
	for _, l := range p.Lazy {
		if l == i {
			return true
		}
	}

	return false
}

// Sym returns the quoted symbol 'name.
func Sym(name string) Atom {
	return Quote{Expr: Ident(name)}
}

// IsNil reports whether a is the false value: nil itself or a quoted
// empty list.
func IsNil(a Atom) bool {
	switch v := a.(type) {
	case Nil:
		return true
	case Quote:
		_, isNil := v.Expr.(Nil)
		return isNil
	}

	return false
}

// TypeName names the kind of expression for error messages.
func TypeName(e SExpr) string {
	switch e.(type) {
	case String:
		return "string"
	case Number:
		return "number"
	case Ident:
		return "ident"
	case Nil:
		return "nil"
	case Quote:
		return "quote"
	case Cons:
		return "cons"
	case *Lambda, *Procedure:
		return "function"
	}

	return "unknown"
}

// Equal compares numbers by value, strings and symbols by content, quotes
// and pairs structurally, and functions by identity.
func Equal(a, b SExpr) bool {
	switch x := a.(type) {
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Ident:
		y, ok := b.(Ident)
		return ok && x == y
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Quote:
		y, ok := b.(Quote)
		return ok && Equal(x.Expr, y.Expr)
	case Cons:
		y, ok := b.(Cons)
		return ok && Equal(x.Head, y.Head) && Equal(x.Tail, y.Tail)
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x == y
	case *Procedure:
		y, ok := b.(*Procedure)
		return ok && x == y
	}

	return false
}

// List builds the quoted-cons shape the parser produces for (e1 e2 ...).
// An empty list is Nil.
func List(elems ...SExpr) SExpr {
	var res SExpr = Nil{}
	for i := len(elems) - 1; i >= 0; i-- {
		res = Cons{Head: Quote{Expr: elems[i]}, Tail: Quote{Expr: res}}
	}

	return res
}

// Unquote strips the quote from a list slot.
func Unquote(a Atom) SExpr {
	if q, isQuote := a.(Quote); isQuote {
		return q.Expr
	}

	return a
}

// Elements walks a proper list and returns its elements. It reports false
// when e is not Nil or a chain of Cons cells ending in Nil.
func Elements(e SExpr) ([]SExpr, bool) {
	var res []SExpr
	for {
		switch v := e.(type) {
		case Nil:
			return res, true
		case Cons:
			res = append(res, Unquote(v.Head))
			e = Unquote(v.Tail)
		default:
			return res, false
		}
	}
}

// Datum turns a list slot into the value car/cdr hand back: a quoted
// self-evaluating atom loses its quote, while quoted symbols, lists and
// nested quotes stay quoted.
func Datum(slot Atom) Atom {
	q, isQuote := slot.(Quote)
	if !isQuote {
		return slot
	}

	switch inner := q.Expr.(type) {
	case Ident, Cons, Quote:
		return slot
	case Atom:
		return inner
	}

	return slot
}

// Slot is the inverse of Datum: it wraps a value for storage in a pair.
func Slot(val Atom) Atom {
	if _, isQuote := val.(Quote); isQuote {
		return val
	}

	return Quote{Expr: val}
}
