// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

type Type int

const (
	ILLEGAL Type = iota
	WHITESPACE

	// Literals
	NUMBER
	IDENTIFIER

	// Brackets
	LEFT_PAREN    // (
	RIGHT_PAREN   // )
	LEFT_BRACKET  // [
	RIGHT_BRACKET // ]

	// Separators
	DOT_DOT
	SEMICOLON

	// Comparisons
	LESS
	GREATER
	LESS_EQUAL
	GREATER_EQUAL
	EQUAL
	NOT_EQUAL

	// Arithmetic
	PLUS
	MINUS
	SLASH
	STAR

	// Keywords
	MOD
	DIV
	TO
	IN
	AND
	OR
)

var names = [...]string{
	ILLEGAL:       "ILLEGAL",
	WHITESPACE:    "WHITESPACE",
	NUMBER:        "NUMBER",
	IDENTIFIER:    "IDENTIFIER",
	LEFT_PAREN:    "(",
	RIGHT_PAREN:   ")",
	LEFT_BRACKET:  "[",
	RIGHT_BRACKET: "]",
	DOT_DOT:       "..",
	SEMICOLON:     ";",
	LESS:          "<",
	GREATER:       ">",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",
	EQUAL:         "=",
	NOT_EQUAL:     "<>",
	PLUS:          "+",
	MINUS:         "-",
	SLASH:         "/",
	STAR:          "*",
	MOD:           "mod",
	DIV:           "div",
	TO:            "to",
	IN:            "in",
	AND:           "and",
	OR:            "or",
}

// String returns the source spelling for fixed-spelling kinds and an upper
// case name for the others.
func (t Type) String() string {
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

var keywords = map[string]Type{
	"mod": MOD,
	"div": DIV,
	"to":  TO,
	"in":  IN,
	"and": AND,
	"or":  OR,
}

func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENTIFIER
}

// Keywords returns the keyword spellings in a stable order.
func Keywords() []string {
	return []string{"and", "div", "in", "mod", "or", "to"}
}

// Precedence is the binding power of t as a binary operator. Higher binds
// tighter; zero means t is not a binary operator.
func (t Type) Precedence() int {
	switch t {
	case OR:
		return 1
	case AND:
		return 2
	case LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, EQUAL, NOT_EQUAL:
		return 3
	case IN:
		return 3
	case TO:
		return 4
	case PLUS:
		return 5
	case MINUS:
		return 6
	case STAR:
		return 7
	case SLASH, DIV, MOD:
		return 8
	}
	return 0
}

func (t Type) IsKeyword() bool {
	return t >= MOD && t <= OR
}

func (t Type) IsComparison() bool {
	switch t {
	case LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, EQUAL, NOT_EQUAL:
		return true
	}
	return false
}

type Position struct {
	Offset int // 0-based byte offset in the source
	Line   int // 1-based
	Column int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type     Type
	Lexeme   string
	Position Position
}

// End is the offset just past the token.
func (t Token) End() int {
	return t.Position.Offset + len(t.Lexeme)
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d", t.Type.String(), t.Lexeme, t.Position.Offset)
}
