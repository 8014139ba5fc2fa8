// SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestSession() (*Session, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return NewSession(&buf), &buf
}

func run(s *Session, buf *bytes.Buffer, input string) string {
	buf.Reset()
	s.Eval(input)
	return strings.TrimSpace(buf.String())
}

func TestEvaluateFormula(t *testing.T) {
	s, buf := newTestSession()
	assert.Equal(t, "6", run(s, buf, "2+2*2"))
	assert.Equal(t, "", run(s, buf, "   "))
}

func TestParamsCommand(t *testing.T) {
	s, buf := newTestSession()
	assert.Equal(t, "params: [2 3]", run(s, buf, ":params 2, 3"))
	assert.Equal(t, "5", run(s, buf, "p1 + p2"))
	assert.Equal(t, "params: [2 3]", run(s, buf, ":params"))
	assert.Contains(t, run(s, buf, ":params x"), `invalid number "x"`)
}

func TestDrawsAndSeed(t *testing.T) {
	s, buf := newTestSession()
	assert.Equal(t, "drawing from draws 0 0.99", run(s, buf, ":draws 0 0.99"))
	assert.Equal(t, "1", run(s, buf, "[1..6]"))
	assert.Equal(t, "6", run(s, buf, "[1..6]"))
	assert.Contains(t, run(s, buf, ":draws 1.5"), "outside [0,1)")

	run(s, buf, ":seed 7")
	first := run(s, buf, "[1..1000]")
	run(s, buf, ":seed 7")
	assert.Equal(t, first, run(s, buf, "[1..1000]"))

	assert.Contains(t, run(s, buf, ":seed abc"), "invalid seed")
	assert.Equal(t, "drawing from the default generator", run(s, buf, ":seed"))
	assert.Equal(t, "drawing from default", run(s, buf, ":draws"))
}

func TestErrorsAreRendered(t *testing.T) {
	s, buf := newTestSession()
	out := run(s, buf, "2 + foo")
	assert.Contains(t, out, "error[E0100]")
	assert.Contains(t, out, "<repl>:1:5")
	assert.Contains(t, out, "^^^")

	out = run(s, buf, "p4")
	assert.Contains(t, out, "E0201")
}

func TestInspectionCommands(t *testing.T) {
	s, buf := newTestSession()

	out := run(s, buf, ":ast 1 + 2")
	assert.Contains(t, out, "BINARY_EXPR + @2")
	assert.Contains(t, out, "(1 + 2)")

	assert.Equal(t, "1 + 2 * 3", run(s, buf, ":fmt 1+2*3"))

	assert.Contains(t, run(s, buf, ":check 5 / 0"), "warning[E0802]")
	assert.Equal(t, "no warnings", run(s, buf, ":check 1 + 1"))

	run(s, buf, ":params 1")
	assert.Contains(t, run(s, buf, ":check p2"), "E0801")

	assert.Contains(t, run(s, buf, ":help"), ":params")
	assert.Contains(t, run(s, buf, ":nope"), "unknown command :nope")
}

func TestQuit(t *testing.T) {
	s, _ := newTestSession()
	assert.True(t, s.Eval("1"))
	assert.False(t, s.Eval(":quit"))
	assert.False(t, s.Eval(" :q "))
}

func TestIncomplete(t *testing.T) {
	assert.True(t, Incomplete("(1 + 2"))
	assert.True(t, Incomplete("1 + [1..3"))
	assert.False(t, Incomplete("(1 + 2)"))
	assert.False(t, Incomplete("1 +"))
	assert.False(t, Incomplete(":ast (1"))
}
