package parser

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dimbata23/golang-lisp-interpreter/pkg/lexer"
)

// runes allowed in identifiers besides letters and digits
const symbolChars = "_+-/*=?<>!"

type Parser struct {
	src     string
	scanner *lexer.Scanner
	err     error
}

func Parse(input string) *Parser {
	return &Parser{
		src:     input,
		scanner: lexer.New(input),
	}
}

// ParseString reads every top-level form of src.
func ParseString(src string) ([]SExpr, error) {
	return Parse(src).All()
}

// Next returns the next top-level form, or io.EOF once the input is
// exhausted. After an error every further call returns the same error.
func (p *Parser) Next() (SExpr, error) {
	if p.err != nil {
		return nil, p.err
	}

	p.skipSpace(p.scanner)
	if _, ok := p.scanner.Peek(); !ok {
		if p.scanner.AtEOF() {
			p.err = io.EOF
		} else {
			p.err = p.errorf(p.scanner, false, "unexpected `)`")
		}
		return nil, p.err
	}

	expr, err := p.sexpr(p.scanner)
	if err != nil {
		p.err = err
		return nil, err
	}

	return expr, nil
}

// All reads the remaining top-level forms.
func (p *Parser) All() ([]SExpr, error) {
	var res []SExpr
	for {
		expr, err := p.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, expr)
	}
}

func (p *Parser) errorf(s *lexer.Scanner, incomplete bool, msg string) *Error {
	return &Error{Src: p.src, Offset: s.Pos(), Msg: msg, Incomplete: incomplete}
}

// eofError is the error for a scanner that has nothing left to give: either
// the text ran out or a `)` closes the enclosing list too early.
func (p *Parser) eofError(s *lexer.Scanner, expected string) *Error {
	if s.AtEOF() {
		return p.errorf(s, true, "unexpected end of input, expected "+expected)
	}

	return p.errorf(s, false, "unexpected `)`, expected "+expected)
}

func (p *Parser) skipSpace(s *lexer.Scanner) {
	for {
		r, ok := s.Peek()
		switch {
		case !ok:
			return
		case unicode.IsSpace(r):
			s.Advance()
		case r == ';':
			s.AcceptFunc(func(r rune) bool { return r != '\n' })
		default:
			return
		}
	}
}

func (p *Parser) sexpr(s *lexer.Scanner) (SExpr, error) {
	p.skipSpace(s)

	r, ok := s.Peek()
	if !ok {
		return nil, p.eofError(s, "an expression")
	}

	if r == '(' {
		return p.list(s)
	}

	return p.atom(s)
}

// list reads the elements of a list through a sub-scanner that stops at
// the closing paren, then takes the paren itself.
func (p *Parser) list(s *lexer.Scanner) (SExpr, error) {
	s.Advance()

	sub := s.Sub()
	var elems []SExpr
	for {
		p.skipSpace(sub)
		if _, ok := sub.Peek(); !ok {
			break
		}

		elem, err := p.sexpr(sub)
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	s.Merge(sub)

	if r, ok := s.Peek(); !ok || r != ')' {
		return nil, p.eofError(s, "`)`")
	}
	s.Advance()

	return List(elems...), nil
}

func (p *Parser) atom(s *lexer.Scanner) (Atom, error) {
	r, _ := s.Peek()

	switch {
	case r == '"':
		return p.stringLit(s)

	case r == '\'':
		s.Advance()
		expr, err := p.sexpr(s)
		if err != nil {
			return nil, err
		}
		return Quote{Expr: expr}, nil

	case isDigit(r):
		return p.number(s)

	case isIdentStart(r):
		start := s.Pos()
		s.AcceptFunc(isIdentChar)
		return Ident(p.src[start:s.Pos()]), nil
	}

	return nil, p.errorf(s, false, "unexpected char "+runeAt(p.src, s.Pos()))
}

func (p *Parser) stringLit(s *lexer.Scanner) (Atom, error) {
	s.Advance()

	var b strings.Builder
	for {
		r, ok := s.Advance()
		if !ok {
			return nil, p.errorf(s, true, "unterminated string")
		}

		switch r {
		case '"':
			return String(b.String()), nil

		case '\\':
			esc, ok := s.Advance()
			if !ok {
				return nil, p.errorf(s, true, "unterminated string")
			}
			b.WriteRune(unescape(esc))

		default:
			b.WriteRune(r)
		}
	}
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case '0':
		return 0
	}

	return r
}

func (p *Parser) number(s *lexer.Scanner) (Atom, error) {
	start := s.Pos()
	s.AcceptFunc(isDigit)
	if s.Accept(".") && s.AcceptFunc(isDigit) == 0 {
		return nil, p.malformedNumber(s, start)
	}

	if r, ok := s.Peek(); ok && (r == '.' || isIdentChar(r)) {
		return nil, p.malformedNumber(s, start)
	}

	num, err := strconv.ParseFloat(p.src[start:s.Pos()], 64)
	if err != nil {
		return nil, &Error{Src: p.src, Offset: start, Msg: err.Error()}
	}

	return Number(num), nil
}

func (p *Parser) malformedNumber(s *lexer.Scanner, start int) *Error {
	s.AcceptFunc(func(r rune) bool { return r == '.' || isIdentChar(r) })
	return &Error{
		Src:    p.src,
		Offset: start,
		Msg:    "number in wrong format '" + p.src[start:s.Pos()] + "'",
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || strings.ContainsRune(symbolChars, r)
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
