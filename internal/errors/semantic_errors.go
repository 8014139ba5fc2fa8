package errors

import (
	stderrors "errors"
	"fmt"

	"formula/token"
)

// SemanticErrorBuilder provides a fluent interface for creating errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new error builder
func NewSemanticError(code, message string, pos token.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new warning builder
func NewSemanticWarning(code, message string, pos token.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *SemanticErrorBuilder) WithReplacement(message, replacement string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Diagnostic is implemented by parser and evaluator errors that know where
// in the source they happened.
type Diagnostic interface {
	error
	ErrorCode() string
	ErrorPosition() token.Position
	ErrorLength() int
}

// FromError converts a positioned error into a CompilerError. The second
// result is false when err carries no position.
func FromError(err error) (CompilerError, bool) {
	var ce CompilerError
	if stderrors.As(err, &ce) {
		return ce, true
	}

	var d Diagnostic
	if !stderrors.As(err, &d) {
		return CompilerError{}, false
	}

	builder := NewSemanticError(d.ErrorCode(), message(d), d.ErrorPosition()).
		WithLength(d.ErrorLength())
	if help := GetErrorDescription(d.ErrorCode()); help != "Unknown error" {
		builder = builder.WithHelp(help)
	}
	return builder.Build(), true
}

// message strips the trailing offset that Error() appends, the reporter
// shows the location itself.
func message(d Diagnostic) string {
	type messager interface{ ErrorMessage() string }
	if m, ok := d.(messager); ok {
		return m.ErrorMessage()
	}
	return d.Error()
}

// Common warning constructors

func InvertedRange(from, to float64, pos token.Position, length int) CompilerError {
	return NewSemanticWarning(WarningInvertedRange,
		fmt.Sprintf("range %g..%g starts after it ends", from, to), pos).
		WithLength(length).
		WithReplacement("swap the bounds", fmt.Sprintf("%g..%g", to, from)).
		WithNote("drawing from this range fails at evaluation time").
		Build()
}

func UnknownParameter(index, declared int, pos token.Position) CompilerError {
	name := fmt.Sprintf("p%d", index+1)
	return NewSemanticWarning(WarningUnknownParameter,
		fmt.Sprintf("parameter '%s' is not among the %d declared parameters", name, declared), pos).
		WithLength(len(name)).
		WithSuggestion(fmt.Sprintf("declare at least %d parameters or use p1..p%d", index+1, max(declared, 1))).
		Build()
}

func DivisionByZero(op string, pos token.Position) CompilerError {
	return NewSemanticWarning(WarningDivisionByZero,
		fmt.Sprintf("'%s' by literal zero", op), pos).
		WithLength(len(op)).
		WithNote("the result saturates to +2000000000 for positive dividends and -2000000000 otherwise").
		Build()
}

func CollapsedRanges(ranges string, pos token.Position, length int) CompilerError {
	return NewSemanticWarning(WarningCollapsedRanges,
		fmt.Sprintf("'to' merges the disjoint ranges %s into one span", ranges), pos).
		WithLength(length).
		WithSuggestion("use the bracket range alone to keep the gaps").
		Build()
}

func SelfMembership(pos token.Position) CompilerError {
	return NewSemanticWarning(WarningSelfMembership,
		"'in' with a range on the left always holds", pos).
		WithLength(2).
		WithNote("the probe value is drawn from the left range and then tested against it").
		WithSuggestion("put the value to test on the left: <value> in [a..b]").
		Build()
}
