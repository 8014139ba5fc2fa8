package parser

import (
	"formula/internal/ast"
	"formula/internal/errors"
	"formula/token"
)

// DefaultMaxDepth bounds how deeply parentheses may nest. Operator chains
// such as "1 + 1 + ... + 1" do not count towards it.
const DefaultMaxDepth = 1000

type Parser struct {
	maxDepth int
	depth    int
}

func NewParser(maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{maxDepth: maxDepth}
}

// Parse tokenizes and parses source into an expression tree.
func Parse(source string) (ast.Expr, error) {
	return NewParser(DefaultMaxDepth).ParseSource(source)
}

func (p *Parser) ParseSource(source string) (ast.Expr, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return p.ParseTokens(tokens)
}

// ParseTokens parses whitespace-free tokens as produced by Tokenize.
func (p *Parser) ParseTokens(tokens []token.Token) (ast.Expr, error) {
	p.depth = 0
	return p.parseExpression(tokens, token.Token{Position: token.Position{Line: 1, Column: 1}})
}

// parseExpression parses one nesting level; at is the token that opened it
// and positions the implicit 0 of an empty group.
func (p *Parser) parseExpression(tokens []token.Token, at token.Token) (ast.Expr, error) {
	if err := p.enter(at); err != nil {
		return nil, err
	}
	defer p.leave()

	flat, err := p.flatten(tokens, at.Position)
	if err != nil {
		return nil, err
	}
	return p.parseFlat(flat)
}

// parseFlat turns a flat expression into a tree by splitting it at the
// operator with the lowest binding power. When several operators share the
// lowest power the leftmost one is chosen, so "8 - 4 - 2" parses as
// 8 - (4 - 2).
func (p *Parser) parseFlat(elems []element) (ast.Expr, error) {
	if len(elems) == 0 {
		return nil, &ParseError{Code: errors.ErrorMissingOperator, Message: "empty expression"}
	}

	switch len(elems) {
	case 1:
		if elems[0].isOperator() {
			return nil, errorAt(errors.ErrorLoneOperator, elems[0].tok, "unexpected operator '%s'", elems[0].tok.Lexeme)
		}
		return elems[0].expr, nil

	case 2:
		first, second := elems[0], elems[1]
		if first.isOperator() && first.tok.Type == token.MINUS && !second.isOperator() {
			return &ast.UnaryExpr{Pos: first.position(), Op: token.MINUS, Value: second.expr}, nil
		}
		return nil, errorAt(errors.ErrorUnknownState, first.tok, "unknown state: '%s' followed by '%s'", first, second)
	}

	lowest, lowestPrec := -1, 0
	for i := 1; i+1 < len(elems); i++ {
		left, middle, right := elems[i-1], elems[i], elems[i+1]
		if left.isOperator() || !middle.isOperator() || right.isOperator() {
			continue
		}
		prec := middle.tok.Type.Precedence()
		if prec == 0 {
			return nil, errorAt(errors.ErrorUnknownToken, middle.tok, "'%s' is not a binary operator", middle.tok.Lexeme)
		}
		if lowest < 0 || prec < lowestPrec {
			lowest, lowestPrec = i, prec
		}
	}

	if lowest < 0 {
		return nil, errorAt(errors.ErrorMissingOperator, firstOperator(elems), "unable to find binary operator")
	}

	left, err := p.parseFlat(elems[:lowest])
	if err != nil {
		return nil, err
	}
	right, err := p.parseFlat(elems[lowest+1:])
	if err != nil {
		return nil, err
	}

	op := elems[lowest].tok
	return &ast.BinaryExpr{Pos: op.Position, Op: op.Type, Left: left, Right: right}, nil
}

// firstOperator picks the token an error about a whole flat expression
// points at: the first operator, or the first element when there is none.
func firstOperator(elems []element) token.Token {
	for _, e := range elems {
		if e.isOperator() {
			return e.tok
		}
	}
	return elems[0].tok
}
