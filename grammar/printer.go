package grammar

import (
	"strings"
)

func (f *Formula) String() string {
	return printElements(f.Elements)
}

// printElements spaces binary operators and glues a negation to its operand.
// A '-' is a negation when nothing precedes it or another operator does.
func printElements(elems []*Element) string {
	var b strings.Builder
	for i, e := range elems {
		if i > 0 && !isNegation(elems, i-1) {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	return b.String()
}

func isNegation(elems []*Element, i int) bool {
	if elems[i].Op != "-" {
		return false
	}
	return i == 0 || elems[i-1].Op != ""
}

func (e *Element) String() string {
	switch {
	case e.Op != "":
		return e.Op
	case e.Number != "":
		return strings.TrimSuffix(e.Number, ".")
	case e.Param != "":
		return e.Param
	case e.Group != nil:
		return e.Group.String()
	case e.Bracket != nil:
		return e.Bracket.String()
	}
	return ""
}

func (g *Group) String() string {
	return "(" + printElements(g.Elements) + ")"
}

func (b *Bracket) String() string {
	if b.Param != "" {
		return "[" + b.Param + "]"
	}
	parts := make([]string, len(b.Ranges))
	for i, r := range b.Ranges {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ";") + "]"
}

func (r *RangeLit) String() string {
	return r.From + ".." + r.To
}
