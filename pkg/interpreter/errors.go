package interpreter

import "errors"

var (
	ErrUnbound = errors.New("unbound name")
	ErrArity   = errors.New("arity mismatch")
	ErrType    = errors.New("type mismatch")
	ErrSyntax  = errors.New("bad syntax")
)
