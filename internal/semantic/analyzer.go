package semantic

import (
	"sort"

	"formula/internal/ast"
	"formula/internal/errors"
	"formula/token"
)

// Analyzer looks for formulas that parse and evaluate but probably do not
// mean what their author intended. Everything it reports is a warning.
type Analyzer struct {
	paramCount int                    // negative when the caller does not know it
	errors     []errors.CompilerError // collected warnings, sorted by offset
}

func NewAnalyzer(paramCount int) *Analyzer {
	return &Analyzer{
		paramCount: paramCount,
		errors:     make([]errors.CompilerError, 0),
	}
}

// Analyze walks expr and returns the warnings found, ordered by source
// position.
func (a *Analyzer) Analyze(expr ast.Expr) []errors.CompilerError {
	a.errors = make([]errors.CompilerError, 0)

	ast.Inspect(expr, func(node ast.Expr) bool {
		switch n := node.(type) {
		case *ast.RangeExpr:
			a.analyzeRange(n)
		case *ast.ParameterExpr:
			a.analyzeParameter(n)
		case *ast.BinaryExpr:
			a.analyzeBinary(n)
		}
		return true
	})

	sort.SliceStable(a.errors, func(i, j int) bool {
		return a.errors[i].Position.Offset < a.errors[j].Position.Offset
	})
	return a.errors
}

// GetErrors returns the warnings of the last Analyze call.
func (a *Analyzer) GetErrors() []errors.CompilerError {
	return a.errors
}

func (a *Analyzer) analyzeRange(n *ast.RangeExpr) {
	for _, r := range n.Ranges {
		if r.From > r.To {
			a.addInvertedRangeWarning(n, r)
		}
	}
}

func (a *Analyzer) analyzeParameter(n *ast.ParameterExpr) {
	if a.paramCount >= 0 && n.Index >= a.paramCount {
		a.addCompilerError(errors.UnknownParameter(n.Index, a.paramCount, n.Pos))
	}
}

func (a *Analyzer) analyzeBinary(n *ast.BinaryExpr) {
	switch n.Op {
	case token.SLASH, token.DIV, token.MOD:
		if isZero(n.Right) {
			a.addCompilerError(errors.DivisionByZero(n.Op.String(), n.Pos))
		}

	case token.TO:
		for _, side := range []ast.Expr{n.Left, n.Right} {
			if rng, ok := side.(*ast.RangeExpr); ok && len(rng.Ranges) > 1 {
				a.addCollapsedRangesWarning(rng)
			}
		}

	case token.IN:
		_, leftIsRange := n.Left.(*ast.RangeExpr)
		_, rightIsRange := n.Right.(*ast.RangeExpr)
		if leftIsRange && !rightIsRange {
			a.addCompilerError(errors.SelfMembership(n.Pos))
		}
	}
}

// isZero reports whether expr is a literal zero, possibly negated.
func isZero(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return e.Value == 0
	case *ast.UnaryExpr:
		return isZero(e.Value)
	}
	return false
}
