package parser

import (
	"strings"
	"testing"

	"formula/token"
)

func scanTypes(input string) []token.Type {
	var types []token.Type
	for _, tok := range NewScanner(input).ScanTokens() {
		if tok.Type != token.WHITESPACE {
			types = append(types, tok.Type)
		}
	}
	return types
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "mod div to in and or p1 modulo _x"
	expected := []token.Type{
		token.MOD, token.DIV, token.TO, token.IN, token.AND, token.OR,
		token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER,
	}

	types := scanTypes(input)
	if len(types) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(types))
	}
	for i, exp := range expected {
		if types[i] != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, types[i])
		}
	}
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `( ) [ ] .. ; < > <= >= + - / * = <>`
	expected := []token.Type{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACKET, token.RIGHT_BRACKET,
		token.DOT_DOT, token.SEMICOLON, token.LESS, token.GREATER, token.LESS_EQUAL,
		token.GREATER_EQUAL, token.PLUS, token.MINUS, token.SLASH, token.STAR,
		token.EQUAL, token.NOT_EQUAL,
	}
	expectedLexemes := strings.Fields(input)

	var tokens []token.Token
	for _, tok := range NewScanner(input).ScanTokens() {
		if tok.Type != token.WHITESPACE {
			tokens = append(tokens, tok)
		}
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Type)
		}
		if tokens[i].Lexeme != expectedLexemes[i] {
			t.Errorf("expected lexeme '%s', got '%s'", expectedLexemes[i], tokens[i].Lexeme)
		}
	}
}

func TestComparisonsWithoutSpaces(t *testing.T) {
	types := scanTypes("1<2<=3<>4>=5>6")
	expected := []token.Type{
		token.NUMBER, token.LESS, token.NUMBER, token.LESS_EQUAL, token.NUMBER,
		token.NOT_EQUAL, token.NUMBER, token.GREATER_EQUAL, token.NUMBER,
		token.GREATER, token.NUMBER,
	}
	if len(types) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(types))
	}
	for i, exp := range expected {
		if types[i] != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, types[i])
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		lexemes []string
	}{
		{"42", []string{"42"}},
		{"1.5", []string{"1.5"}},
		{"7.", []string{"7."}},
		{"1..3", []string{"1", "..", "3"}},
		{"1.5..3", []string{"1.5", "..", "3"}},
		{"2.5.1", []string{"2.5"}},
	}

	for _, tt := range tests {
		tok := ScanAt(tt.input, 0)
		if tok.Type != token.NUMBER || tok.Lexeme != tt.lexemes[0] {
			t.Errorf("%q: expected NUMBER %q, got %s %q", tt.input, tt.lexemes[0], tok.Type, tok.Lexeme)
			continue
		}

		var got []string
		for _, tok := range NewScanner(tt.input).ScanTokens() {
			got = append(got, tok.Lexeme)
		}
		if len(tt.lexemes) > 1 && strings.Join(got, " ") != strings.Join(tt.lexemes, " ") {
			t.Errorf("%q: expected lexemes %v, got %v", tt.input, tt.lexemes, got)
		}
	}
}

func TestWhitespaceRun(t *testing.T) {
	tok := ScanAt(" \t\r\n 1", 0)
	if tok.Type != token.WHITESPACE || tok.Lexeme != " \t\r\n " {
		t.Errorf("expected one whitespace run, got %s %q", tok.Type, tok.Lexeme)
	}
	if tok.End() != 5 {
		t.Errorf("expected next offset 5, got %d", tok.End())
	}
}

func TestScanAtIsPure(t *testing.T) {
	source := "10 + [p2]"
	first := ScanAt(source, 5)
	second := ScanAt(source, 5)
	if first != second {
		t.Errorf("ScanAt returned different tokens: %v vs %v", first, second)
	}
	if first.Type != token.LEFT_BRACKET || first.Position.Offset != 5 {
		t.Errorf("expected '[' at 5, got %v", first)
	}
	if tok := ScanAt(source, 6); tok.Type != token.IDENTIFIER || tok.Lexeme != "p2" {
		t.Errorf("expected identifier p2, got %v", tok)
	}
}

func TestUnknownCharacterYieldsEmptyToken(t *testing.T) {
	tok := ScanAt("2 # 3", 2)
	if tok.Type != token.ILLEGAL || tok.Lexeme != "" {
		t.Errorf("expected empty ILLEGAL token, got %s %q", tok.Type, tok.Lexeme)
	}

	tokens := NewScanner("2 # 3").ScanTokens()
	last := tokens[len(tokens)-1]
	if last.Type != token.ILLEGAL || last.Position.Offset != 2 {
		t.Errorf("expected scan to stop at the ILLEGAL token, got %v", last)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"2+2*2",
		"  [1..3; 7..9]  to  p1 ",
		"\t(5 div 2) mod 3\n<> 1",
		"-5 in [1..10] and 3 >= 2 or 0",
		"",
	}

	for _, input := range inputs {
		var b strings.Builder
		for _, tok := range NewScanner(input).ScanTokens() {
			if input[tok.Position.Offset:tok.End()] != tok.Lexeme {
				t.Errorf("%q: token %v does not match its source slice", input, tok)
			}
			b.WriteString(tok.Lexeme)
		}
		if b.String() != input {
			t.Errorf("round trip failed: expected %q, got %q", input, b.String())
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	tokens := NewScanner("1 +\n  2").ScanTokens()
	last := tokens[len(tokens)-1]
	if last.Lexeme != "2" {
		t.Fatalf("expected last token '2', got %q", last.Lexeme)
	}
	if last.Position.Line != 2 || last.Position.Column != 3 || last.Position.Offset != 6 {
		t.Errorf("expected 2:3 @6, got %s @%d", last.Position, last.Position.Offset)
	}
}
