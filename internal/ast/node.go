package ast

import "formula/token"

type Node interface {
	NodePos() token.Position
	NodeType() NodeType
	String() string
}

func (n *NumberExpr) NodePos() token.Position { return n.Pos }
func (*NumberExpr) NodeType() NodeType        { return NUMBER_EXPR }

func (r *RangeExpr) NodePos() token.Position { return r.Pos }
func (*RangeExpr) NodeType() NodeType        { return RANGE_EXPR }

func (p *ParameterExpr) NodePos() token.Position { return p.Pos }
func (*ParameterExpr) NodeType() NodeType        { return PARAMETER_EXPR }

func (b *BinaryExpr) NodePos() token.Position { return b.Pos }
func (*BinaryExpr) NodeType() NodeType        { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() token.Position { return u.Pos }
func (*UnaryExpr) NodeType() NodeType        { return UNARY_EXPR }

// Inspect walks the tree depth first, left before right, calling fn for
// every node. Children are skipped when fn returns false.
func Inspect(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	switch e := expr.(type) {
	case *BinaryExpr:
		Inspect(e.Left, fn)
		Inspect(e.Right, fn)
	case *UnaryExpr:
		Inspect(e.Value, fn)
	}
}

// Depth is the height of the tree; a leaf has depth 1.
func Depth(expr Expr) int {
	switch e := expr.(type) {
	case *BinaryExpr:
		return 1 + max(Depth(e.Left), Depth(e.Right))
	case *UnaryExpr:
		return 1 + Depth(e.Value)
	case nil:
		return 0
	default:
		return 1
	}
}
