package parser

import (
	"strings"
	"unicode/utf8"

	"formula/internal/errors"
	"formula/token"
)

// Tokenize scans source, checks that the tokens cover it exactly and drops
// the whitespace.
func Tokenize(source string) ([]token.Token, error) {
	all := NewScanner(source).ScanTokens()
	if err := checkRoundTrip(source, all); err != nil {
		return nil, err
	}

	tokens := make([]token.Token, 0, len(all))
	for _, tok := range all {
		if tok.Type != token.WHITESPACE {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

func checkRoundTrip(source string, tokens []token.Token) error {
	var b strings.Builder
	b.Grow(len(source))

	for _, tok := range tokens {
		if tok.Lexeme == "" {
			r, size := utf8.DecodeRuneInString(source[tok.Position.Offset:])
			return &ParseError{
				Code:     errors.ErrorUnexpectedCharacter,
				Message:  "unexpected character " + quoteRune(r),
				Position: tok.Position,
				Length:   size,
			}
		}

		start, end := tok.Position.Offset, tok.End()
		if end > len(source) || source[start:end] != tok.Lexeme {
			return errorAt(errors.ErrorRoundTrip, tok, "token %q does not match the source", tok.Lexeme)
		}
		b.WriteString(tok.Lexeme)
	}

	if b.String() != source {
		return &ParseError{
			Code:     errors.ErrorRoundTrip,
			Message:  "tokens do not reconstruct the source",
			Position: token.Position{Offset: b.Len()},
		}
	}
	return nil
}

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "'\\ufffd'"
	}
	return "'" + string(r) + "'"
}
