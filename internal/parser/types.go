package parser

import (
	"fmt"

	"formula/token"
)

// ParseError reports a lexical or structural problem with the source. Every
// ParseError is fatal to the parse that produced it.
type ParseError struct {
	Code     string
	Message  string
	Position token.Position
	Length   int // how many bytes of source the error covers
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d", e.Message, e.Position.Offset)
}

func (e *ParseError) ErrorCode() string             { return e.Code }
func (e *ParseError) ErrorPosition() token.Position { return e.Position }
func (e *ParseError) ErrorMessage() string          { return e.Message }

func (e *ParseError) ErrorLength() int {
	if e.Length <= 0 {
		return 1
	}
	return e.Length
}

func errorAt(code string, tok token.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: tok.Position,
		Length:   len(tok.Lexeme),
	}
}
