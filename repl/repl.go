// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"formula"
	"formula/internal/ast"
	"formula/internal/errors"
)

const (
	PROMPT = ">> "
	CONT   = ".. "
)

const help = `Enter a formula to evaluate it. Commands:
  :params [v ...]   show or set the parameters p1, p2, ...
  :seed [n]         draw from a seeded generator, or the default one without n
  :draws [v ...]    replay fixed draws in [0,1), cycling
  :ast <formula>    print the parsed tree
  :fmt <formula>    print the formula in canonical spelling
  :check <formula>  list warnings
  :help             show this help
  :quit             leave`

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// Session holds the state shared by the lines of one REPL run.
type Session struct {
	out    io.Writer
	params []float64
	source formula.Source
	label  string // describes source for :draws and :seed
}

func NewSession(out io.Writer) *Session {
	return &Session{out: out, label: "default"}
}

// Eval runs one input, a command or a formula. It returns false once the
// session should end.
func (s *Session) Eval(input string) bool {
	line := strings.TrimSpace(input)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, ":") {
		s.evaluate(line)
		return true
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return false
	case ":help", ":h":
		fmt.Fprintln(s.out, help)
	case ":params", ":p":
		s.setParams(rest)
	case ":seed":
		s.setSeed(rest)
	case ":draws":
		s.setDraws(rest)
	case ":ast":
		s.printAST(rest)
	case ":fmt":
		s.format(rest)
	case ":check":
		s.check(rest)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

func (s *Session) evaluate(source string) {
	v, err := formula.Parse(source, s.params, s.source)
	if err != nil {
		s.reportError(source, err)
		return
	}
	fmt.Fprintln(s.out, green(v))
}

func (s *Session) setParams(args string) {
	if args == "" {
		fmt.Fprintf(s.out, "params: %v\n", s.params)
		return
	}
	values, err := parseFloats(args)
	if err != nil {
		fmt.Fprintln(s.out, yellow(err.Error()))
		return
	}
	s.params = values
	fmt.Fprintf(s.out, "params: %v\n", s.params)
}

func (s *Session) setSeed(args string) {
	if args == "" {
		s.source, s.label = nil, "default"
		fmt.Fprintln(s.out, "drawing from the default generator")
		return
	}
	seed, err := strconv.ParseUint(args, 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "%s\n", yellow(fmt.Sprintf("invalid seed %q", args)))
		return
	}
	s.source, s.label = formula.NewSeededSource(seed), "seed "+args
	fmt.Fprintf(s.out, "drawing from %s\n", s.label)
}

func (s *Session) setDraws(args string) {
	if args == "" {
		fmt.Fprintf(s.out, "drawing from %s\n", s.label)
		return
	}
	values, err := parseFloats(args)
	if err != nil {
		fmt.Fprintln(s.out, yellow(err.Error()))
		return
	}
	for _, v := range values {
		if v < 0 || v >= 1 {
			fmt.Fprintln(s.out, yellow(fmt.Sprintf("draw %g is outside [0,1)", v)))
			return
		}
	}
	s.source, s.label = formula.NewReplay(values...), "draws "+args
	fmt.Fprintf(s.out, "drawing from %s\n", s.label)
}

func (s *Session) printAST(source string) {
	f, err := formula.Compile(source)
	if err != nil {
		s.reportError(source, err)
		return
	}
	fmt.Fprint(s.out, ast.Dump(f.AST()))
	fmt.Fprintln(s.out, faint(f.String()))
}

func (s *Session) format(source string) {
	out, err := formula.Format(source)
	if err != nil {
		s.reportError(source, err)
		return
	}
	fmt.Fprintln(s.out, out)
}

func (s *Session) check(source string) {
	count := len(s.params)
	if s.params == nil {
		count = -1
	}
	warnings, err := formula.Check(source, count)
	if err != nil {
		s.reportError(source, err)
		return
	}
	if len(warnings) == 0 {
		fmt.Fprintln(s.out, green("no warnings"))
		return
	}
	reporter := errors.NewErrorReporter("<repl>", source)
	for _, w := range warnings {
		fmt.Fprint(s.out, reporter.FormatError(w))
	}
}

func (s *Session) reportError(source string, err error) {
	ce, ok := errors.FromError(err)
	if !ok {
		fmt.Fprintln(s.out, color.RedString(err.Error()))
		return
	}
	fmt.Fprint(s.out, errors.NewErrorReporter("<repl>", source).FormatError(ce))
}

func parseFloats(args string) ([]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(args, ",", " "))
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		values = append(values, v)
	}
	return values, nil
}

// Start runs an interactive session on the terminal. History is loaded from
// and saved to historyPath when it is not empty.
func Start(historyPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	session := NewSession(os.Stdout)
	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(input) != "" {
			ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		}
		if !session.Eval(input) {
			return nil
		}
	}
}

// readInput keeps prompting while the text so far only lacks a closing
// parenthesis or bracket.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONT
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if stderrors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if Incomplete(b.String()) {
			continue
		}
		return b.String(), true
	}
}

// Incomplete reports whether source fails only because a group or bracket
// is still open. Commands are never incomplete.
func Incomplete(source string) bool {
	if strings.HasPrefix(strings.TrimSpace(source), ":") {
		return false
	}
	_, err := formula.Compile(source)
	switch formula.ErrorCode(err) {
	case errors.ErrorUnclosedParen, errors.ErrorUnclosedBracket:
		return true
	}
	return false
}
