package parser

import (
	"fmt"
	"strconv"
	"strings"
)

func (s String) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(s) {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')

	return b.String()
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (i Ident) String() string {
	return string(i)
}

func (Nil) String() string {
	return "()"
}

func (q Quote) String() string {
	return "'" + q.Expr.String()
}

// String renders proper lists as (a b c) and anything else as a dotted
// pair, e.g. (1 2 . 3).
func (c Cons) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(Unquote(c.Head).String())

	tail := Unquote(c.Tail)
	for {
		if next, isCons := tail.(Cons); isCons {
			b.WriteByte(' ')
			b.WriteString(Unquote(next.Head).String())
			tail = Unquote(next.Tail)
			continue
		}

		if _, isNil := tail.(Nil); !isNil {
			b.WriteString(" . ")
			b.WriteString(tail.String())
		}
		break
	}
	b.WriteByte(')')

	return b.String()
}

func (l *Lambda) String() string {
	return fmt.Sprintf("<fn (%s) %s>", strings.Join(l.Params, " "), l.Body)
}

func (p *Procedure) String() string {
	return fmt.Sprintf("<builtin %s/%d>", p.Name, p.Argc)
}

// Display is the form print writes: strings appear without quotes or
// escapes and quoted data without its leading quote.
func Display(a Atom) string {
	switch v := a.(type) {
	case String:
		return string(v)
	case Quote:
		return v.Expr.String()
	}

	return a.String()
}
