package semantic

import (
	"formula/internal/ast"
	"formula/internal/errors"
)

func (a *Analyzer) addCompilerError(err errors.CompilerError) {
	a.errors = append(a.errors, err)
}

// Range bounds carry no positions of their own, so range warnings point at
// the whole bracket.
func (a *Analyzer) addInvertedRangeWarning(n *ast.RangeExpr, r ast.Range) {
	a.addCompilerError(errors.InvertedRange(r.From, r.To, n.Pos, bracketLength(n)))
}

func (a *Analyzer) addCollapsedRangesWarning(n *ast.RangeExpr) {
	a.addCompilerError(errors.CollapsedRanges(n.String(), n.Pos, bracketLength(n)))
}

func bracketLength(n *ast.RangeExpr) int {
	return max(1, n.EndPos.Offset-n.Pos.Offset+1)
}
