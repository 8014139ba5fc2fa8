package errors

// Error codes for the formula toolchain
// These codes are used in error messages, case files and editor
// diagnostics to identify a failure independently of its wording.
//
// Error code ranges:
// E0100-E0199: Lexical and parser errors
// E0200-E0299: Evaluation errors
// E0800-E0899: Warning codes

const (
	// E0100: Token that cannot start or continue an expression
	ErrorUnknownToken = "E0100"

	// E0101: '(' without a matching ')'
	ErrorUnclosedParen = "E0101"

	// E0102: '[' without a following ']'
	ErrorUnclosedBracket = "E0102"

	// E0103: '[]' with nothing inside
	ErrorEmptyBrackets = "E0103"

	// E0104: Bracket content that is not a valid parameter reference
	ErrorInvalidParameter = "E0104"

	// E0105: Bracket content that is not a valid range list
	ErrorInvalidRange = "E0105"

	// E0106: Operator standing where an operand is expected
	ErrorLoneOperator = "E0106"

	// E0107: Two-element expression that is not a unary minus
	ErrorUnknownState = "E0107"

	// E0108: No binary operator joins the operands
	ErrorMissingOperator = "E0108"

	// E0109: Nesting exceeds the parser depth limit
	ErrorTooDeep = "E0109"

	// E0110: Character the scanner cannot consume
	ErrorUnexpectedCharacter = "E0110"

	// E0111: Token texts do not reconstruct the source
	ErrorRoundTrip = "E0111"

	// E0112: Numeric literal outside the float64 range
	ErrorInvalidNumber = "E0112"

	// E0200: Operator or node the evaluator does not know
	ErrorUnknownOperator = "E0200"

	// E0201: Parameter index outside the supplied parameter list
	ErrorParameterOutOfRange = "E0201"

	// E0202: Random draw could not be mapped onto the ranges
	ErrorRangeSelection = "E0202"

	// E0203: Result is not a number
	ErrorNotANumber = "E0203"

	// E0204: Result does not fit an integer
	ErrorResultOutOfRange = "E0204"

	// Warning codes (reserved range: E0800-E0899)

	// E0800: Range whose start exceeds its end
	WarningInvertedRange = "E0800"

	// E0801: Parameter beyond the declared parameter count
	WarningUnknownParameter = "E0801"

	// E0802: Division by a literal zero
	WarningDivisionByZero = "E0802"

	// E0803: 'to' collapses disjoint ranges into one span
	WarningCollapsedRanges = "E0803"

	// E0804: 'in' probes a range with a value drawn from itself
	WarningSelfMembership = "E0804"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnknownToken:
		return "Token is not valid at this position"
	case ErrorUnclosedParen:
		return "Opening parenthesis has no matching closing parenthesis"
	case ErrorUnclosedBracket:
		return "Opening bracket has no closing bracket"
	case ErrorEmptyBrackets:
		return "Brackets must contain a parameter or a range list"
	case ErrorInvalidParameter:
		return "Parameter references must look like p1, p2, ..."
	case ErrorInvalidRange:
		return "Ranges must look like 1..3 and be separated by ';'"
	case ErrorLoneOperator:
		return "Operator has no operands"
	case ErrorUnknownState:
		return "Two adjacent elements that do not form a negation"
	case ErrorMissingOperator:
		return "Operands are not joined by a binary operator"
	case ErrorTooDeep:
		return "Expression is nested too deeply"
	case ErrorUnexpectedCharacter:
		return "Character is not part of the formula alphabet"
	case ErrorRoundTrip:
		return "Scanner output does not reproduce the source"
	case ErrorInvalidNumber:
		return "Numeric literal cannot be represented"
	case ErrorUnknownOperator:
		return "Expression tree contains an operator the evaluator does not support"
	case ErrorParameterOutOfRange:
		return "Formula references a parameter that was not supplied"
	case ErrorRangeSelection:
		return "Random draw falls outside the available ranges"
	case ErrorNotANumber:
		return "Evaluation produced NaN"
	case ErrorResultOutOfRange:
		return "Result is infinite or too large to round to an integer"
	case WarningInvertedRange:
		return "Range start is greater than its end"
	case WarningUnknownParameter:
		return "Parameter index exceeds the declared parameter count"
	case WarningDivisionByZero:
		return "Division by zero saturates to the numeric bound"
	case WarningCollapsedRanges:
		return "'to' merges disjoint ranges into a single span"
	case WarningSelfMembership:
		return "'in' draws its probe from the range it tests"
	default:
		return "Unknown error"
	}
}

// IsWarning reports whether code lies in the warning range.
func IsWarning(code string) bool {
	return len(code) == 5 && code >= "E0800" && code <= "E0899"
}
