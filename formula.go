// Package formula compiles and evaluates quest formulas: short arithmetic
// expressions over numbers, positional parameters and random ranges that
// yield a single integer.
//
//	v, err := formula.Parse("[1..6] + p1", []float64{2}, nil)
package formula

import (
	stderrors "errors"

	"github.com/tliron/commonlog"

	"formula/grammar"
	"formula/internal/ast"
	"formula/internal/errors"
	"formula/internal/eval"
	"formula/internal/parser"
	"formula/internal/semantic"
)

var log = commonlog.GetLogger("formula")

// Source supplies the draws for random ranges; Float64 returns a value in
// [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Source = eval.Source

// SourceFunc adapts a function to Source.
type SourceFunc = eval.SourceFunc

// Replay is a Source handing out a fixed sequence of draws.
type Replay = eval.Replay

// Diagnostic is a positioned error or warning with an optional fix.
type Diagnostic = errors.CompilerError

// MaxNumber bounds every arithmetic result.
const MaxNumber = ast.MaxNumber

// Formula is a compiled expression. It is read only and may be evaluated
// from several goroutines as long as each uses its own Source.
type Formula struct {
	source string
	expr   ast.Expr
}

// Compile parses source without evaluating it.
func Compile(source string) (*Formula, error) {
	expr, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("compiled %q:\n%s", source, ast.Dump(expr))
	}
	return &Formula{source: source, expr: expr}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Formula {
	f, err := Compile(source)
	if err != nil {
		panic("formula: Compile(" + source + "): " + err.Error())
	}
	return f
}

// Parse compiles source and evaluates it once with params and src, rounding
// the result to the nearest integer. A nil src draws from the default
// generator.
func Parse(source string, params []float64, src Source) (int, error) {
	f, err := Compile(source)
	if err != nil {
		return 0, err
	}
	return f.Evaluate(params, src)
}

// Evaluate computes the formula and rounds half up, so 2.5 becomes 3 and
// -2.5 becomes -2. A result that is infinite or does not fit an int is an
// error with code E0204.
func (f *Formula) Evaluate(params []float64, src Source) (int, error) {
	v, err := f.EvaluateFloat(params, src)
	if err != nil {
		return 0, err
	}
	return eval.Round(v, f.expr.NodePos())
}

// EvaluateFloat computes the formula without rounding.
func (f *Formula) EvaluateFloat(params []float64, src Source) (float64, error) {
	return eval.Evaluate(f.expr, params, src)
}

// Source returns the text the formula was compiled from.
func (f *Formula) Source() string {
	return f.source
}

// String renders the parsed tree fully parenthesized.
func (f *Formula) String() string {
	return f.expr.String()
}

func (f *Formula) AST() ast.Expr {
	return f.expr
}

// ErrorCode returns the diagnostic code carried by err, or "" when err does
// not come from this package.
func ErrorCode(err error) string {
	var coded interface{ ErrorCode() string }
	if stderrors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return ""
}

// Format rewrites source in canonical spelling.
func Format(source string) (string, error) {
	return grammar.Format(source)
}

// Check parses source and reports warnings about constructs that are legal
// but likely unintended. paramCount is the number of parameters the caller
// will supply; a negative count skips parameter checks.
func Check(source string, paramCount int) ([]Diagnostic, error) {
	expr, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return semantic.NewAnalyzer(paramCount).Analyze(expr), nil
}

// NewSeededSource returns a reproducible Source.
func NewSeededSource(seed uint64) Source {
	return eval.NewSeededSource(seed)
}

// Fixed returns a Source that always draws v.
func Fixed(v float64) Source {
	return eval.Fixed(v)
}

// NewReplay returns a Source that cycles through values.
func NewReplay(values ...float64) *Replay {
	return eval.NewReplay(values...)
}
