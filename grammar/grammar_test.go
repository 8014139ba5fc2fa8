package grammar_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formula/grammar"
)

func TestParseStructure(t *testing.T) {
	f, err := grammar.Parse("test.formula", "[1..3; 7..9] + (p1 - 2) * [p2]")
	require.NoError(t, err)
	require.Len(t, f.Elements, 5)

	bracket := f.Elements[0].Bracket
	require.NotNil(t, bracket)
	require.Len(t, bracket.Ranges, 2)
	assert.Equal(t, "1", bracket.Ranges[0].From)
	assert.Equal(t, "9", bracket.Ranges[1].To)

	assert.Equal(t, "+", f.Elements[1].Op)

	group := f.Elements[2].Group
	require.NotNil(t, group)
	require.Len(t, group.Elements, 3)
	assert.Equal(t, "p1", group.Elements[0].Param)
	assert.Equal(t, "-", group.Elements[1].Op)
	assert.Equal(t, "2", group.Elements[2].Number)

	assert.Equal(t, "*", f.Elements[3].Op)
	assert.Equal(t, "p2", f.Elements[4].Bracket.Param)
}

func TestKeywordsAreOperators(t *testing.T) {
	f, err := grammar.Parse("", "5 mod 2 div 1 to 3 in [1..9] and 1 or 0")
	require.NoError(t, err)

	var ops []string
	for _, e := range f.Elements {
		if e.Op != "" {
			ops = append(ops, e.Op)
		}
	}
	assert.Equal(t, []string{"mod", "div", "to", "in", "and", "or"}, ops)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2+2*2", "2 + 2 * 2"},
		{"  (2+2)*2 ", "(2 + 2) * 2"},
		{"- 2 * 3", "-2 * 3"},
		{"-(1+2)", "-(1 + 2)"},
		{"[1..3 ; 7..9]", "[1..3;7..9]"},
		{"[1..3;]", "[1..3]"},
		{"[ p1 ]+p2", "[p1] + p2"},
		{"1<2<=3<>4>=5>6=7", "1 < 2 <= 3 <> 4 >= 5 > 6 = 7"},
		{"5 in[1..10]and p1>2", "5 in [1..10] and p1 > 2"},
		{"7.", "7"},
		{"1.5*2", "1.5 * 2"},
		{"()", "()"},
		{"", ""},
		{"(-5)", "(-5)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, err := grammar.Format(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)

			again, err := grammar.Format(out)
			require.NoError(t, err)
			assert.Equal(t, out, again, "formatting is not stable")
		})
	}
}

func TestFormatRejectsInvalidSource(t *testing.T) {
	for _, src := range []string{"2 +", "(1", "[]", "2 # 3", "[px]", "1..3"} {
		_, err := grammar.Format(src)
		assert.Error(t, err, src)
	}
}

func TestReportError(t *testing.T) {
	color.NoColor = true
	source := "1 + (2 *\n 3"

	_, err := grammar.Parse("broken.formula", source)
	require.Error(t, err)

	var buf bytes.Buffer
	grammar.ReportError(&buf, source, err)
	out := buf.String()
	assert.Contains(t, out, "Syntax error in broken.formula")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "→")
}
