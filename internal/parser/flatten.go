package parser

import (
	"formula/internal/ast"
	"formula/internal/errors"
	"formula/token"
)

// flatten resolves numbers and bracketed groups of one nesting level into
// expressions and passes binary operator tokens through, producing the
// input of the precedence splitter. An empty token list stands for 0.
func (p *Parser) flatten(tokens []token.Token, at token.Position) ([]element, error) {
	if len(tokens) == 0 {
		return []element{exprElement(token.Token{Position: at}, &ast.NumberExpr{Pos: at, Value: 0})}, nil
	}

	var flat []element
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok.Type.Precedence() > 0:
			flat = append(flat, operatorElement(tok))

		case tok.Type == token.NUMBER:
			value, err := parseNumber(tok)
			if err != nil {
				return nil, err
			}
			flat = append(flat, exprElement(tok, &ast.NumberExpr{Pos: tok.Position, Value: value}))

		case tok.Type == token.IDENTIFIER:
			// A bare "p1" reads the same as "[p1]".
			index, ok := parameterIndex(tok.Lexeme)
			if !ok {
				return nil, errorAt(errors.ErrorUnknownToken, tok, "unknown token '%s'", tok.Lexeme)
			}
			flat = append(flat, exprElement(tok, &ast.ParameterExpr{Pos: tok.Position, Index: index}))

		case tok.Type == token.LEFT_PAREN:
			end, err := matchParen(tokens, i)
			if err != nil {
				return nil, err
			}
			expr, err := p.parseExpression(tokens[i+1:end], tok)
			if err != nil {
				return nil, err
			}
			flat = append(flat, exprElement(tok, expr))
			i = end

		case tok.Type == token.LEFT_BRACKET:
			end, err := matchBracket(tokens, i)
			if err != nil {
				return nil, err
			}
			inside := tokens[i+1 : end]
			if len(inside) == 0 {
				return nil, errorAt(errors.ErrorEmptyBrackets, tok, "empty brackets")
			}
			expr, err := parseBracketExpression(tok, inside, tokens[end])
			if err != nil {
				return nil, err
			}
			flat = append(flat, exprElement(tok, expr))
			i = end

		default:
			return nil, errorAt(errors.ErrorUnknownToken, tok, "unknown token '%s'", tok.Lexeme)
		}
	}

	return flat, nil
}

// matchParen finds the ')' closing the '(' at open, counting nested pairs.
func matchParen(tokens []token.Token, open int) (int, error) {
	depth := 1
	for i := open + 1; i < len(tokens); i++ {
		switch tokens[i].Type {
		case token.LEFT_PAREN:
			depth++
		case token.RIGHT_PAREN:
			depth--
		}
		if depth == 0 {
			return i, nil
		}
	}
	return 0, errorAt(errors.ErrorUnclosedParen, tokens[open], "unable to find closing ')'")
}

// matchBracket finds the first ']' after the '[' at open. Nested '[' are not
// counted, so "[[1..2]]" ends at the first ']'.
func matchBracket(tokens []token.Token, open int) (int, error) {
	for i := open + 1; i < len(tokens); i++ {
		if tokens[i].Type == token.RIGHT_BRACKET {
			return i, nil
		}
	}
	return 0, errorAt(errors.ErrorUnclosedBracket, tokens[open], "unable to find closing ']'")
}

// parseBracketExpression parses the inside of "[...]": a parameter
// reference such as "p1" or a range list such as "1..3;7..9".
func parseBracketExpression(open token.Token, inside []token.Token, closing token.Token) (ast.Expr, error) {
	first := inside[0]
	if first.Type == token.IDENTIFIER {
		if len(inside) > 1 {
			return nil, errorAt(errors.ErrorInvalidParameter, inside[1], "unexpected '%s' after parameter '%s'", inside[1].Lexeme, first.Lexeme)
		}
		index, ok := parameterIndex(first.Lexeme)
		if !ok {
			return nil, errorAt(errors.ErrorInvalidParameter, first, "unknown identifier '%s'", first.Lexeme)
		}
		return &ast.ParameterExpr{Pos: open.Position, Index: index}, nil
	}

	var ranges []ast.Range
	for i := 0; i < len(inside); {
		if i+2 >= len(inside) {
			return nil, errorAt(errors.ErrorInvalidRange, inside[i], "incomplete range starting with '%s'", inside[i].Lexeme)
		}

		fromTok, dotDot, toTok := inside[i], inside[i+1], inside[i+2]
		if fromTok.Type != token.NUMBER {
			return nil, errorAt(errors.ErrorInvalidRange, fromTok, "range start must be a number, found '%s'", fromTok.Lexeme)
		}
		if dotDot.Type != token.DOT_DOT {
			return nil, errorAt(errors.ErrorInvalidRange, dotDot, "expected '..' in range, found '%s'", dotDot.Lexeme)
		}
		if toTok.Type != token.NUMBER {
			return nil, errorAt(errors.ErrorInvalidRange, toTok, "range end must be a number, found '%s'", toTok.Lexeme)
		}

		from, err := parseBound(fromTok)
		if err != nil {
			return nil, err
		}
		to, err := parseBound(toTok)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, ast.Range{From: from, To: to})

		i += 3
		if i < len(inside) {
			if inside[i].Type != token.SEMICOLON {
				return nil, errorAt(errors.ErrorInvalidRange, inside[i], "expected ';' between ranges, found '%s'", inside[i].Lexeme)
			}
			i++
		}
	}

	return &ast.RangeExpr{Pos: open.Position, EndPos: closing.Position, Ranges: ranges}, nil
}
