package ast

type NodeType int

const (
	ILLEGAL NodeType = iota
	NUMBER_EXPR
	RANGE_EXPR
	PARAMETER_EXPR
	BINARY_EXPR
	UNARY_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:        "ILLEGAL",
	NUMBER_EXPR:    "NUMBER_EXPR",
	RANGE_EXPR:     "RANGE_EXPR",
	PARAMETER_EXPR: "PARAMETER_EXPR",
	BINARY_EXPR:    "BINARY_EXPR",
	UNARY_EXPR:     "UNARY_EXPR",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "ILLEGAL"
}

// MaxNumber bounds every arithmetic result to [-MaxNumber, MaxNumber].
const MaxNumber = 2_000_000_000
