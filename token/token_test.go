// SPDX-License-Identifier: Apache-2.0
package token

import (
	"sort"
	"testing"
)

func TestLookupIdent(t *testing.T) {
	for _, kw := range Keywords() {
		tt := LookupIdent(kw)
		if !tt.IsKeyword() {
			t.Errorf("%q: expected keyword, got %s", kw, tt)
		}
		if tt.String() != kw {
			t.Errorf("%q: expected spelling to round trip, got %q", kw, tt.String())
		}
	}
	for _, ident := range []string{"p1", "MOD", "modulo", "x"} {
		if tt := LookupIdent(ident); tt != IDENTIFIER {
			t.Errorf("%q: expected IDENTIFIER, got %s", ident, tt)
		}
	}
}

func TestKeywordsAreSorted(t *testing.T) {
	kws := Keywords()
	if !sort.StringsAreSorted(kws) {
		t.Errorf("keywords not sorted: %v", kws)
	}
	if len(kws) != len(keywords) {
		t.Errorf("expected %d keywords, got %d", len(keywords), len(kws))
	}
}

func TestPrecedence(t *testing.T) {
	order := [][]Type{
		{OR},
		{AND},
		{LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, EQUAL, NOT_EQUAL, IN},
		{TO},
		{PLUS},
		{MINUS},
		{STAR},
		{SLASH, DIV, MOD},
	}
	for level, types := range order {
		for _, tt := range types {
			if got := tt.Precedence(); got != level+1 {
				t.Errorf("%s: expected precedence %d, got %d", tt, level+1, got)
			}
		}
	}

	for _, tt := range []Type{NUMBER, IDENTIFIER, LEFT_PAREN, RIGHT_BRACKET, DOT_DOT, SEMICOLON, WHITESPACE} {
		if tt.Precedence() != 0 {
			t.Errorf("%s should not be a binary operator", tt)
		}
	}
}

func TestComparisons(t *testing.T) {
	if !NOT_EQUAL.IsComparison() || !LESS_EQUAL.IsComparison() {
		t.Error("expected <> and <= to be comparisons")
	}
	if IN.IsComparison() || PLUS.IsComparison() {
		t.Error("in and + are not comparisons")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: NUMBER, Lexeme: "12", Position: Position{Offset: 3, Line: 1, Column: 4}}
	if tok.End() != 5 {
		t.Errorf("expected end 5, got %d", tok.End())
	}
	if got := tok.String(); got != `NUMBER "12" at 3` {
		t.Errorf("unexpected token string %q", got)
	}
	if got := tok.Position.String(); got != "1:4" {
		t.Errorf("unexpected position string %q", got)
	}
	if got := Type(99).String(); got != "Type(99)" {
		t.Errorf("unexpected string for unknown type %q", got)
	}
}
