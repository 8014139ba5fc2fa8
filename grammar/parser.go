package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"formula/internal/parser"
)

var formulaParser = participle.MustBuild[Formula](
	participle.Lexer(FormulaLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse reads source into its surface syntax tree. name labels positions
// in errors.
func Parse(name, source string) (*Formula, error) {
	return formulaParser.ParseString(name, source)
}

// Format returns source in canonical spelling. The result is checked
// against the evaluator's parser: source must parse, and the formatted text
// must parse to the same tree.
func Format(source string) (string, error) {
	want, err := parser.Parse(source)
	if err != nil {
		return "", err
	}

	f, err := Parse("<formula>", source)
	if err != nil {
		return "", err
	}
	out := f.String()

	got, err := parser.Parse(out)
	if err != nil {
		return "", fmt.Errorf("formatted text %q does not parse: %w", out, err)
	}
	if got.String() != want.String() {
		return "", fmt.Errorf("formatting changed the meaning of %q: %s became %s", source, want, got)
	}
	return out, nil
}

// ReportError writes a caret-style description of a grammar error to w.
func ReportError(w io.Writer, src string, err error) {
	red := color.New(color.FgRed)
	pe, ok := err.(participle.Error)
	if !ok {
		red.Fprintf(w, "Unexpected error: %s\n", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		red.Fprintf(w, "Syntax error at unknown location: %s\n", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	red.Fprintf(w, "Syntax error in %s at line %d, column %d:\n", pos.Filename, pos.Line, pos.Column)
	fmt.Fprintln(w, line)
	color.New(color.FgHiRed).Fprintln(w, caret)
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
