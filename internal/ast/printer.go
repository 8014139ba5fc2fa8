package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (n *NumberExpr) String() string {
	return formatNumber(n.Value)
}

func (r Range) String() string {
	return formatNumber(r.From) + ".." + formatNumber(r.To)
}

func (r *RangeExpr) String() string {
	parts := make([]string, len(r.Ranges))
	for i, rng := range r.Ranges {
		parts[i] = rng.String()
	}
	return "[" + strings.Join(parts, ";") + "]"
}

func (p *ParameterExpr) String() string {
	return fmt.Sprintf("[p%d]", p.Index+1)
}

// String renders binary expressions fully parenthesized so the tree shape
// is visible: "2+2*2" prints as "(2 + (2 * 2))".
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op.String(), b.Right.String())
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", u.Op.String(), u.Value.String())
}

// Dump renders the tree one node per line, indented by depth.
func Dump(expr Expr) string {
	var b strings.Builder
	dump(&b, expr, 0)
	return b.String()
}

func dump(b *strings.Builder, expr Expr, level int) {
	b.WriteString(strings.Repeat("  ", level))
	switch e := expr.(type) {
	case *BinaryExpr:
		fmt.Fprintf(b, "%s %s @%d\n", e.NodeType(), e.Op, e.Pos.Offset)
		dump(b, e.Left, level+1)
		dump(b, e.Right, level+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "%s %s @%d\n", e.NodeType(), e.Op, e.Pos.Offset)
		dump(b, e.Value, level+1)
	case nil:
		b.WriteString("<nil>\n")
	default:
		fmt.Fprintf(b, "%s %s @%d\n", e.NodeType(), e.String(), e.NodePos().Offset)
	}
}
