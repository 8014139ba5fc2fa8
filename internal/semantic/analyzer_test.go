package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formula/internal/errors"
	"formula/internal/parser"
)

func analyze(t *testing.T, source string, paramCount int) []errors.CompilerError {
	t.Helper()
	expr, err := parser.Parse(source)
	require.NoError(t, err, "parse %q", source)
	return NewAnalyzer(paramCount).Analyze(expr)
}

func codes(warnings []errors.CompilerError) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Code
	}
	return out
}

func TestCleanFormulas(t *testing.T) {
	sources := []string{
		"2+2*2",
		"[1..6] + p1",
		"5 in [1..10]",
		"p1 to p2",
		"[1..3] to 10",
		"10 / 2 div 1 mod 3",
		"",
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			assert.Empty(t, analyze(t, source, 2))
		})
	}
}

func TestInvertedRange(t *testing.T) {
	warnings := analyze(t, "1 + [9..2;3..4]", -1)
	require.Len(t, warnings, 1)
	w := warnings[0]
	assert.Equal(t, errors.WarningInvertedRange, w.Code)
	assert.Equal(t, errors.Warning, w.Level)
	assert.Equal(t, 4, w.Position.Offset)
	assert.Equal(t, 11, w.Length)
	require.NotEmpty(t, w.Suggestions)
	assert.Equal(t, "2..9", w.Suggestions[0].Replacement)
}

func TestUnknownParameter(t *testing.T) {
	warnings := analyze(t, "p1 + [p3]", 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.WarningUnknownParameter, warnings[0].Code)
	assert.Equal(t, 5, warnings[0].Position.Offset)
	assert.Contains(t, warnings[0].Message, "p3")

	assert.Empty(t, analyze(t, "p9", -1), "unknown parameter count skips the check")
}

func TestDivisionByZero(t *testing.T) {
	tests := []struct {
		source string
		count  int
	}{
		{"5 / 0", 1},
		{"5 div 0", 1},
		{"5 mod (0)", 1},
		{"5 / (-0)", 1},
		{"0 / 5", 0},
		{"5 / (1 - 1)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			warnings := analyze(t, tt.source, 0)
			assert.Len(t, warnings, tt.count)
			for _, w := range warnings {
				assert.Equal(t, errors.WarningDivisionByZero, w.Code)
				assert.Equal(t, 2, w.Position.Offset)
			}
		})
	}
}

func TestCollapsedRanges(t *testing.T) {
	warnings := analyze(t, "[1..2;8..9] to [4..5;6..7]", 0)
	assert.Equal(t, []string{errors.WarningCollapsedRanges, errors.WarningCollapsedRanges}, codes(warnings))
	assert.Equal(t, 0, warnings[0].Position.Offset)
	assert.Equal(t, 15, warnings[1].Position.Offset)
	assert.Contains(t, warnings[0].Message, "[1..2;8..9]")
}

func TestSelfMembership(t *testing.T) {
	warnings := analyze(t, "[1..3] in 2", 0)
	require.Len(t, warnings, 1)
	assert.Equal(t, errors.WarningSelfMembership, warnings[0].Code)
	assert.Equal(t, 7, warnings[0].Position.Offset)

	assert.Empty(t, analyze(t, "[1..3] in [2..4]", 0))
}

func TestWarningsAreOrderedByOffset(t *testing.T) {
	warnings := analyze(t, "p4 + [3..1] / 0 + ([1..2;5..6] to 1)", 1)
	assert.Equal(t, []string{
		errors.WarningUnknownParameter,
		errors.WarningInvertedRange,
		errors.WarningDivisionByZero,
		errors.WarningCollapsedRanges,
	}, codes(warnings))

	a := NewAnalyzer(1)
	expr, err := parser.Parse("[2..1]")
	require.NoError(t, err)
	a.Analyze(expr)
	assert.Len(t, a.GetErrors(), 1)
}
