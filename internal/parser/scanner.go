package parser

import (
	"strings"

	"formula/token"
)

// Scanner walks a source string token by token. It never fails: a character
// that cannot start any token yields a zero-length ILLEGAL token and ends the
// scan, and Tokenize turns that into an error.
type Scanner struct {
	source string
	offset int
	line   int
	column int
	done   bool
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Next returns the next token and false once the source is exhausted.
func (s *Scanner) Next() (token.Token, bool) {
	if s.done || s.offset >= len(s.source) {
		return token.Token{}, false
	}

	tok := ScanAt(s.source, s.offset)
	tok.Position.Line = s.line
	tok.Position.Column = s.column

	if tok.Lexeme == "" {
		s.done = true
		return tok, true
	}

	s.offset = tok.End()
	if n := strings.Count(tok.Lexeme, "\n"); n > 0 {
		s.line += n
		s.column = len(tok.Lexeme) - strings.LastIndexByte(tok.Lexeme, '\n')
	} else {
		s.column += len(tok.Lexeme)
	}

	return tok, true
}

// ScanTokens returns every token, whitespace included.
func (s *Scanner) ScanTokens() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := s.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// ScanAt scans the single token starting at offset. The next token starts
// at the returned token's End(). Line and Column are left zero, only the
// Scanner tracks them.
func ScanAt(source string, offset int) token.Token {
	if offset >= len(source) {
		return token.Token{Type: token.ILLEGAL, Position: token.Position{Offset: offset}}
	}

	c := source[offset]
	if isWhitespace(c) {
		end := offset
		for end < len(source) && isWhitespace(source[end]) {
			end++
		}
		return makeToken(token.WHITESPACE, source, offset, end)
	}

	next := peekAt(source, offset+1)
	switch {
	case c == '.' && next == '.':
		return makeToken(token.DOT_DOT, source, offset, offset+2)
	case c == '<' && next == '>':
		return makeToken(token.NOT_EQUAL, source, offset, offset+2)
	case c == '>' && next == '=':
		return makeToken(token.GREATER_EQUAL, source, offset, offset+2)
	case c == '<' && next == '=':
		return makeToken(token.LESS_EQUAL, source, offset, offset+2)
	case c == '>':
		return makeToken(token.GREATER, source, offset, offset+1)
	case c == '<':
		return makeToken(token.LESS, source, offset, offset+1)
	case isDigit(c):
		return scanNumber(source, offset)
	}

	if tt, ok := singleCharTokens[c]; ok {
		return makeToken(tt, source, offset, offset+1)
	}

	return scanIdentifier(source, offset)
}

var singleCharTokens = map[byte]token.Type{
	'(': token.LEFT_PAREN,
	')': token.RIGHT_PAREN,
	'[': token.LEFT_BRACKET,
	']': token.RIGHT_BRACKET,
	'/': token.SLASH,
	'*': token.STAR,
	'+': token.PLUS,
	'-': token.MINUS,
	'=': token.EQUAL,
	';': token.SEMICOLON,
}

// scanNumber consumes digits and at most one '.', and only when that '.' is
// not the start of a '..'.
func scanNumber(source string, start int) token.Token {
	pos := start
	dotSeen := false
	for pos < len(source) {
		c := source[pos]
		if c == '.' {
			if dotSeen || peekAt(source, pos+1) == '.' {
				break
			}
			dotSeen = true
		} else if !isDigit(c) {
			break
		}
		pos++
	}
	return makeToken(token.NUMBER, source, start, pos)
}

func scanIdentifier(source string, start int) token.Token {
	pos := start
	for pos < len(source) && isIdentChar(source[pos]) {
		pos++
	}
	if pos == start {
		return token.Token{Type: token.ILLEGAL, Position: token.Position{Offset: start}}
	}
	tok := makeToken(token.IDENTIFIER, source, start, pos)
	tok.Type = token.LookupIdent(tok.Lexeme)
	return tok
}

func makeToken(tt token.Type, source string, start, end int) token.Token {
	return token.Token{
		Type:     tt,
		Lexeme:   source[start:end],
		Position: token.Position{Offset: start},
	}
}

func peekAt(source string, offset int) byte {
	if offset >= len(source) {
		return 0
	}
	return source[offset]
}

// Helper functions.

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || isDigit(c) || c == '_'
}
