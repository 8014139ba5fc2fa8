package eval

import (
	"math"

	"github.com/tliron/commonlog"

	"formula/internal/ast"
	"formula/internal/errors"
	"formula/token"
)

var log = commonlog.GetLogger("formula.eval")

// Evaluator walks an expression tree. It holds no state beyond its inputs,
// so one value may be reused for any number of trees.
type Evaluator struct {
	params []float64
	source Source
}

// NewEvaluator binds a parameter vector and a randomness source. A nil
// source falls back to DefaultSource.
func NewEvaluator(params []float64, source Source) *Evaluator {
	if source == nil {
		source = DefaultSource
	}
	return &Evaluator{params: params, source: source}
}

// Evaluate computes the value of expr. Operands are evaluated left before
// right, so draws are taken from source in source order.
func Evaluate(expr ast.Expr, params []float64, source Source) (float64, error) {
	return NewEvaluator(params, source).Evaluate(expr)
}

func (e *Evaluator) Evaluate(expr ast.Expr) (float64, error) {
	if expr == nil {
		return 0, errorAt(errors.ErrorUnknownOperator, token.Position{}, "nothing to evaluate")
	}
	v, err := e.eval(expr)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return 0, errorAt(errors.ErrorNotANumber, expr.NodePos(), "expression evaluated to NaN")
	}
	return v, nil
}

// Round rounds v half up, so 2.5 becomes 3 and -2.5 becomes -2. Results
// that are infinite or outside the int range are E0204; only parameters and
// unary minus can produce them, arithmetic is clamped.
func Round(v float64, pos token.Position) (int, error) {
	r := math.Floor(v + 0.5)
	if math.IsNaN(r) {
		return 0, errorAt(errors.ErrorNotANumber, pos, "expression evaluated to NaN")
	}
	if r >= -math.MinInt || r < math.MinInt {
		return 0, errorAt(errors.ErrorResultOutOfRange, pos, "result %g does not fit an integer", v)
	}
	return int(r), nil
}

// Clamp bounds v to [-ast.MaxNumber, ast.MaxNumber].
func Clamp(v float64) float64 {
	return math.Min(math.Max(v, -ast.MaxNumber), ast.MaxNumber)
}

func saturate(a float64) float64 {
	if a > 0 {
		return ast.MaxNumber
	}
	return -ast.MaxNumber
}

func boolean(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (e *Evaluator) eval(expr ast.Expr) (float64, error) {
	switch n := expr.(type) {
	case *ast.NumberExpr:
		return n.Value, nil

	case *ast.ParameterExpr:
		if n.Index < 0 || n.Index >= len(e.params) {
			return 0, errorAt(errors.ErrorParameterOutOfRange, n.Pos,
				"parameter p%d is not set, %d parameters given", n.Index+1, len(e.params))
		}
		return e.params[n.Index], nil

	case *ast.RangeExpr:
		return e.pick(n.Ranges, n.Pos)

	case *ast.UnaryExpr:
		if n.Op != token.MINUS {
			return 0, errorAt(errors.ErrorUnknownOperator, n.Pos, "unknown unary operator '%s'", n.Op)
		}
		v, err := e.eval(n.Value)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *ast.BinaryExpr:
		switch n.Op {
		case token.TO:
			return e.evalTo(n)
		case token.IN:
			return e.evalIn(n)
		}
		a, b, err := e.operands(n)
		if err != nil {
			return 0, err
		}
		return e.binary(n, a, b)
	}

	return 0, errorAt(errors.ErrorUnknownOperator, token.Position{}, "unknown expression %T", expr)
}

func (e *Evaluator) operands(n *ast.BinaryExpr) (float64, float64, error) {
	a, err := e.eval(n.Left)
	if err != nil {
		return 0, 0, err
	}
	b, err := e.eval(n.Right)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (e *Evaluator) binary(n *ast.BinaryExpr, a, b float64) (float64, error) {
	switch n.Op {
	case token.PLUS:
		return Clamp(a + b), nil
	case token.MINUS:
		return Clamp(a - b), nil
	case token.STAR:
		return Clamp(a * b), nil
	case token.SLASH:
		if b == 0 {
			return saturate(a), nil
		}
		return Clamp(a / b), nil
	case token.DIV:
		if b == 0 {
			return saturate(a), nil
		}
		q := a / b
		if q > 0 {
			return Clamp(math.Floor(q)), nil
		}
		return Clamp(math.Ceil(q)), nil
	case token.MOD:
		if b == 0 {
			return saturate(a), nil
		}
		return Clamp(math.Mod(a, b)), nil

	case token.LESS:
		return boolean(a < b), nil
	case token.LESS_EQUAL:
		return boolean(a <= b), nil
	case token.GREATER:
		return boolean(a > b), nil
	case token.GREATER_EQUAL:
		return boolean(a >= b), nil
	case token.EQUAL:
		return boolean(a == b), nil
	case token.NOT_EQUAL:
		return boolean(a != b), nil

	case token.AND:
		return boolean(a != 0 && b != 0), nil
	case token.OR:
		return boolean(a != 0 || b != 0), nil
	}

	return 0, errorAt(errors.ErrorUnknownOperator, n.Pos, "unknown operator '%s'", n.Op)
}

// evalTo merges both sides into one contiguous span and draws once from it.
// Range literals contribute their bounds without being drawn from; any
// other operand contributes its value as a single point. The span always
// reaches down to at most MaxNumber and up to at least 0, so "[p1] to [p2]"
// with p1=-5, p2=-2 draws from -5..0.
func (e *Evaluator) evalTo(n *ast.BinaryExpr) (float64, error) {
	left, err := e.spanOf(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := e.spanOf(n.Right)
	if err != nil {
		return 0, err
	}

	lo, hi := float64(ast.MaxNumber), 0.0
	for _, side := range [][]ast.Range{left, right} {
		for _, r := range side {
			lo = math.Min(lo, r.From)
			hi = math.Max(hi, r.To)
		}
	}

	log.Debugf("to: drawing from %g..%g", lo, hi)
	return e.pick([]ast.Range{{From: lo, To: hi}}, n.Pos)
}

func (e *Evaluator) spanOf(expr ast.Expr) ([]ast.Range, error) {
	if r, ok := expr.(*ast.RangeExpr); ok {
		return r.Ranges, nil
	}
	v, err := e.eval(expr)
	if err != nil {
		return nil, err
	}
	return []ast.Range{{From: v, To: v}}, nil
}

// evalIn tests membership. A range literal on the left with a scalar on the
// right swaps the operands for dispatch only; the probe is always the left
// operand as written.
func (e *Evaluator) evalIn(n *ast.BinaryExpr) (float64, error) {
	_, leftIsRange := n.Left.(*ast.RangeExpr)
	_, rightIsRange := n.Right.(*ast.RangeExpr)
	target := n.Right
	if leftIsRange && !rightIsRange {
		target = n.Left
	}

	probe, err := e.eval(n.Left)
	if err != nil {
		return 0, err
	}
	probe = Clamp(probe)

	if rng, ok := target.(*ast.RangeExpr); ok {
		for _, r := range rng.Ranges {
			if r.Contains(probe) {
				return 1, nil
			}
		}
		return 0, nil
	}

	other, err := e.eval(n.Right)
	if err != nil {
		return 0, err
	}
	return boolean(probe == Clamp(other)), nil
}

// pick draws one value across ranges weighted by their lengths. The draw is
// scaled to the total length and located by walking the ranges in order.
func (e *Evaluator) pick(ranges []ast.Range, pos token.Position) (float64, error) {
	total := 0.0
	for _, r := range ranges {
		total += r.Len()
	}

	draw := e.source.Float64()
	rnd := math.Floor(draw * total)
	for _, r := range ranges {
		length := r.Len()
		if rnd >= length {
			rnd -= length
			continue
		}
		if rnd < 0 || math.IsNaN(rnd) {
			break
		}
		log.Debugf("range %g..%g picked %g (draw %g)", r.From, r.To, r.From+rnd, draw)
		return r.From + rnd, nil
	}

	return 0, errorAt(errors.ErrorRangeSelection, pos,
		"cannot select a value from %s with draw %g", formatRanges(ranges), draw)
}

func formatRanges(ranges []ast.Range) string {
	return (&ast.RangeExpr{Ranges: ranges}).String()
}
