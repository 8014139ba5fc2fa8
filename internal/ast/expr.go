package ast

import "formula/token"

type Expr interface {
	Node
	isExpr()
}

func (*NumberExpr) isExpr() {}

func (*RangeExpr) isExpr() {}

func (*ParameterExpr) isExpr() {}

func (*BinaryExpr) isExpr() {}

func (*UnaryExpr) isExpr() {}

// NumberExpr represents a numeric literal
// Example: "2", "0.5"
type NumberExpr struct {
	Pos   token.Position
	Value float64
}

// Range is an inclusive interval. Bounds read from source are whole numbers,
// bounds built by 'to' may carry fractions.
type Range struct {
	From float64
	To   float64
}

// Len is the number of values the range covers. A negative length means
// From > To and is a defect, never an empty range.
func (r Range) Len() float64 {
	return r.To - r.From + 1
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.From && v <= r.To
}

// RangeExpr represents a bracketed range list drawn at random
// Example: "[1..3]", "[1..3;7..9]"
type RangeExpr struct {
	Pos    token.Position
	EndPos token.Position
	Ranges []Range
}

// ParameterExpr represents a positional parameter; Index is zero based
// Example: "[p1]" has Index 0
type ParameterExpr struct {
	Pos   token.Position
	Index int
}

// BinaryExpr represents binary operations
// Example: "2 + 2", "p1 in [1..10]", "1 to 6"
type BinaryExpr struct {
	Pos   token.Position // position of the operator
	Op    token.Type
	Left  Expr
	Right Expr
}

// UnaryExpr represents a negation
// Example: "-5"
type UnaryExpr struct {
	Pos   token.Position
	Op    token.Type
	Value Expr
}
