package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var FormulaLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Whole numbers and decimals; "1..3" must leave ".." alone
		{"Number", `[0-9]+(\.[0-9]+)?`, nil},

		// Keywords and parameters
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Operators and punctuation (longest spellings first)
		{"Operator", `\.\.|<>|<=|>=|[-+*/=<>;()\[\].]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
