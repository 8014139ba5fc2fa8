package parser

import (
	"math"
	"strconv"

	"formula/internal/ast"
	"formula/internal/errors"
	"formula/token"
)

// element is one entry of a flat expression: either an operator token
// waiting for its operands or an expression that is already parsed.
type element struct {
	tok  token.Token
	expr ast.Expr
}

func operatorElement(tok token.Token) element {
	return element{tok: tok}
}

func exprElement(tok token.Token, expr ast.Expr) element {
	return element{tok: tok, expr: expr}
}

func (e element) isOperator() bool {
	return e.expr == nil
}

func (e element) position() token.Position {
	return e.tok.Position
}

func (e element) String() string {
	if e.isOperator() {
		return e.tok.Lexeme
	}
	return e.expr.String()
}

func (p *Parser) enter(tok token.Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return errorAt(errors.ErrorTooDeep, tok, "expression nested deeper than %d levels", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func parseNumber(tok token.Token) (float64, error) {
	value, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return 0, errorAt(errors.ErrorInvalidNumber, tok, "invalid number '%s'", tok.Lexeme)
	}
	return value, nil
}

// parseBound reads a range bound the way an integer parse would: the
// fractional part of "1.5" is dropped.
func parseBound(tok token.Token) (float64, error) {
	value, err := parseNumber(tok)
	if err != nil {
		return 0, err
	}
	return math.Trunc(value), nil
}

// parameterIndex maps "p1" to 0, "p2" to 1, and so on.
func parameterIndex(name string) (int, bool) {
	if len(name) < 2 || name[0] != 'p' {
		return 0, false
	}
	for i := 1; i < len(name); i++ {
		if !isDigit(name[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
