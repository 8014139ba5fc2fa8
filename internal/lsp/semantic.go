package lsp

import (
	"formula/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies scanner tokens. Brackets, separators and
// whitespace carry no highlighting and are skipped.
func collectSemanticTokens(tokens []token.Token) []SemanticToken {
	var out []SemanticToken
	for _, tok := range tokens {
		tokenType, ok := classify(tok)
		if !ok || tok.Lexeme == "" {
			continue
		}
		out = append(out, makeToken(tok, tokenType, 0))
	}
	return out
}

func classify(tok token.Token) (string, bool) {
	switch {
	case tok.Type == token.NUMBER:
		return "number", true
	case tok.Type == token.IDENTIFIER:
		return "parameter", true
	case tok.Type.IsKeyword():
		return "keyword", true
	case tok.Type.Precedence() > 0:
		return "operator", true
	case tok.Type == token.DOT_DOT:
		return "operator", true
	}
	return "", false
}

func makeToken(tok token.Token, tokenType string, modifiers int) SemanticToken {
	pos := toProtocolPosition(tok.Position)
	return SemanticToken{
		Line:           pos.Line,
		StartChar:      pos.Character,
		Length:         uint32(len(tok.Lexeme)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}
}

// encodeSemanticTokens packs tokens into the LSP wire format of relative
// line and start offsets.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))
		prevLine, prevStart = t.Line, t.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
