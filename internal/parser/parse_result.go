package parser

import (
	"formula/internal/ast"
	"formula/token"
)

// ParseResult keeps everything a parse produced, for tools that need the
// raw tokens next to the tree or the error.
type ParseResult struct {
	Source string
	Tokens []token.Token // every scanned token, whitespace included
	Expr   ast.Expr
	Err    error
}

// ParseSourceWithTokens parses source and keeps the scanned tokens even
// when parsing fails.
func ParseSourceWithTokens(source string) *ParseResult {
	result := &ParseResult{
		Source: source,
		Tokens: NewScanner(source).ScanTokens(),
	}
	result.Expr, result.Err = Parse(source)
	return result
}

// TokenAt returns the non-whitespace token covering offset.
func (pr *ParseResult) TokenAt(offset int) (token.Token, bool) {
	for _, tok := range pr.Tokens {
		if tok.Type == token.WHITESPACE {
			continue
		}
		if offset >= tok.Position.Offset && offset < tok.End() {
			return tok, true
		}
	}
	return token.Token{}, false
}

// NodeAt returns the innermost expression whose own token covers offset.
// Binary and unary nodes are positioned at their operator, ranges and
// parameters span their brackets.
func (pr *ParseResult) NodeAt(offset int) ast.Expr {
	if pr.Expr == nil {
		return nil
	}

	var found ast.Expr
	ast.Inspect(pr.Expr, func(e ast.Expr) bool {
		start, end := nodeSpan(e, pr.Source)
		if offset >= start && offset < end {
			found = e
		}
		return true
	})
	return found
}

func nodeSpan(e ast.Expr, source string) (int, int) {
	start := e.NodePos().Offset
	switch n := e.(type) {
	case *ast.RangeExpr:
		return start, n.EndPos.Offset + 1
	case *ast.ParameterExpr:
		if start < len(source) && source[start] == '[' {
			end := start
			for end < len(source) && source[end] != ']' {
				end++
			}
			return start, end + 1
		}
	}
	tok := ScanAt(source, start)
	return start, max(tok.End(), start+1)
}
