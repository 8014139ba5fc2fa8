package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Formula mirrors the flat shape the core parser works on: a run of
// operators and operands, with groups and brackets nested inside.
type Formula struct {
	Pos      lexer.Position
	Elements []*Element `@@*`
}

type Element struct {
	Pos     lexer.Position
	Op      string   `  @("<>" | "<=" | ">=" | "<" | ">" | "=" | "+" | "-" | "*" | "/" | "mod" | "div" | "to" | "in" | "and" | "or")`
	Number  string   `| @Number @"."?`
	Param   string   `| @Ident`
	Group   *Group   `| @@`
	Bracket *Bracket `| "[" @@ "]"`
}

type Group struct {
	Pos      lexer.Position
	Elements []*Element `"(" @@* ")"`
}

// Bracket holds either a parameter reference or a range list. A trailing
// ';' is accepted and dropped.
type Bracket struct {
	Pos    lexer.Position
	Param  string      `  @Ident`
	Ranges []*RangeLit `| @@ ( ";" @@ )* ";"?`
}

type RangeLit struct {
	Pos  lexer.Position
	From string `@Number`
	To   string `".." @Number`
}
