package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"formula/internal/errors"
	"formula/internal/semantic"
	"formula/token"
)

const diagnosticSource = "formula"

// collectDiagnostics reports the parse error of doc, or the analyzer
// warnings when it parsed.
func collectDiagnostics(doc *document, paramCount int) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	if doc.result.Err != nil {
		if ce, ok := errors.FromError(doc.result.Err); ok {
			diagnostics = append(diagnostics, convertCompilerError(ce))
		} else {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    spanRange(token.Position{Line: 1, Column: 1}, 1),
				Severity: ptrSeverity(protocol.DiagnosticSeverityError),
				Source:   ptrString(diagnosticSource),
				Message:  doc.result.Err.Error(),
			})
		}
		return diagnostics
	}

	for _, w := range semantic.NewAnalyzer(paramCount).Analyze(doc.result.Expr) {
		diagnostics = append(diagnostics, convertCompilerError(w))
	}
	return diagnostics
}

// convertCompilerError turns a CompilerError into an LSP diagnostic. The
// first suggestion, if any, is appended to the message.
func convertCompilerError(ce errors.CompilerError) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if ce.Level == errors.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}

	message := ce.Message
	if len(ce.Suggestions) > 0 {
		message += " (" + ce.Suggestions[0].Message + ")"
	}

	return protocol.Diagnostic{
		Range:    spanRange(ce.Position, ce.Length),
		Severity: ptrSeverity(severity),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString(diagnosticSource),
		Message:  message,
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
