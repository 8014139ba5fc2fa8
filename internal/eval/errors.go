package eval

import (
	"fmt"

	"formula/token"
)

// Error is returned when evaluation cannot produce a value. Arithmetic edge
// cases such as division by zero are not errors, they saturate.
type Error struct {
	Code     string
	Message  string
	Position token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d", e.Message, e.Position.Offset)
}

func (e *Error) ErrorCode() string             { return e.Code }
func (e *Error) ErrorPosition() token.Position { return e.Position }
func (e *Error) ErrorMessage() string          { return e.Message }
func (e *Error) ErrorLength() int              { return 1 }

func errorAt(code string, pos token.Position, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Position: pos}
}
