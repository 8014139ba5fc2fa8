// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"formula"
	"formula/grammar"
	"formula/internal/ast"
	"formula/internal/errors"
	"formula/internal/parser"
	"formula/internal/suite"
	"formula/token"
)

const appName = "formula"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "tokens":
		os.Exit(cmdTokens(os.Args[2:]))
	case "ast":
		os.Exit(cmdAST(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %[1]s eval [-p 1,2] [-seed n | -draws 0.1,0.9] [-n count] <formula | -f file>
  %[1]s tokens <formula | -f file>       List scanner tokens, whitespace included
  %[1]s ast <formula | -f file>          Print the parsed tree
  %[1]s fmt [-check] <formula | -f file> Print the formula in canonical spelling
  %[1]s check [-params n] <formula | -f file>
  %[1]s run <cases.yaml | dir> ...       Run YAML case files

Every command accepts -v to raise log verbosity.
`, appName)
}

// input holds the flags shared by the commands that work on one formula.
type input struct {
	fs        *flag.FlagSet
	file      *string
	verbosity *int
}

func newInput(name string) *input {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &input{
		fs:        fs,
		file:      fs.String("f", "", "read the formula from `file`"),
		verbosity: fs.Int("v", 0, "log verbosity"),
	}
}

func (in *input) parse(args []string) (name, source string, ok bool) {
	if err := in.fs.Parse(args); err != nil {
		return "", "", false
	}
	commonlog.Configure(*in.verbosity, nil)

	if *in.file != "" {
		data, err := os.ReadFile(*in.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
			return "", "", false
		}
		return *in.file, strings.TrimRight(string(data), "\n"), true
	}
	if in.fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "%s %s: missing formula\n", appName, in.fs.Name())
		return "", "", false
	}
	return "<formula>", strings.Join(in.fs.Args(), " "), true
}

func cmdEval(args []string) int {
	in := newInput("eval")
	params := in.fs.String("p", "", "comma separated parameters p1,p2,...")
	seed := in.fs.String("seed", "", "seed for reproducible draws")
	draws := in.fs.String("draws", "", "comma separated draws in [0,1) to replay")
	count := in.fs.Int("n", 1, "number of evaluations")
	showTime := in.fs.Bool("time", false, "print the elapsed time")
	name, source, ok := in.parse(args)
	if !ok {
		return 2
	}

	values, err := parseFloats(*params)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	var src formula.Source
	switch {
	case *draws != "" && *seed != "":
		fmt.Fprintln(os.Stderr, "-seed and -draws are mutually exclusive")
		return 2
	case *draws != "":
		d, err := parseFloats(*draws)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		src = formula.NewReplay(d...)
	case *seed != "":
		n, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid seed %q\n", *seed)
			return 2
		}
		src = formula.NewSeededSource(n)
	}

	startTime := time.Now()
	f, err := formula.Compile(source)
	if err != nil {
		return report(name, source, err)
	}
	for range max(1, *count) {
		v, err := f.Evaluate(values, src)
		if err != nil {
			return report(name, source, err)
		}
		fmt.Println(v)
	}
	if *showTime {
		color.Green("Evaluated %s in %s", name, formatDuration(time.Since(startTime)))
	}
	return 0
}

func cmdTokens(args []string) int {
	in := newInput("tokens")
	name, source, ok := in.parse(args)
	if !ok {
		return 2
	}

	result := parser.ParseSourceWithTokens(source)
	dim := color.New(color.Faint).SprintFunc()
	for _, tok := range result.Tokens {
		kind := tok.Type.String()
		if tok.Type == token.WHITESPACE {
			fmt.Println(dim(fmt.Sprintf("%-4d %-12s %q", tok.Position.Offset, kind, tok.Lexeme)))
			continue
		}
		fmt.Printf("%-4d %-12s %q\n", tok.Position.Offset, kind, tok.Lexeme)
	}
	if result.Err != nil {
		return report(name, source, result.Err)
	}
	return 0
}

func cmdAST(args []string) int {
	in := newInput("ast")
	name, source, ok := in.parse(args)
	if !ok {
		return 2
	}

	f, err := formula.Compile(source)
	if err != nil {
		return report(name, source, err)
	}
	fmt.Print(ast.Dump(f.AST()))
	fmt.Println(f.String())
	return 0
}

func cmdFmt(args []string) int {
	in := newInput("fmt")
	check := in.fs.Bool("check", false, "exit 1 if the formula is not canonical")
	name, source, ok := in.parse(args)
	if !ok {
		return 2
	}

	if _, err := grammar.Parse(name, source); err != nil {
		grammar.ReportError(os.Stderr, source, err)
		return 1
	}
	out, err := formula.Format(source)
	if err != nil {
		return report(name, source, err)
	}
	if *check {
		if out != source {
			fmt.Println(name)
			return 1
		}
		return 0
	}
	fmt.Println(out)
	return 0
}

func cmdCheck(args []string) int {
	in := newInput("check")
	paramCount := in.fs.Int("params", -1, "number of parameters the caller supplies")
	name, source, ok := in.parse(args)
	if !ok {
		return 2
	}

	warnings, err := formula.Check(source, *paramCount)
	if err != nil {
		return report(name, source, err)
	}
	reporter := errors.NewErrorReporter(name, source)
	for _, w := range warnings {
		fmt.Print(reporter.FormatError(w))
	}
	if len(warnings) > 0 {
		color.Yellow("%d warning(s) in %s", len(warnings), name)
		return 0
	}
	color.Green("No warnings in %s", name)
	return 0
}

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "list passing cases too")
	verbosity := fs.Int("v", 0, "log verbosity")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	commonlog.Configure(*verbosity, nil)

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"testdata"}
	}

	startTime := time.Now()
	var suites []*suite.Suite
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if info.IsDir() {
			loaded, err := suite.LoadDir(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			suites = append(suites, loaded...)
			continue
		}
		s, err := suite.Load(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		suites = append(suites, s)
	}

	result := suite.Run(suites...)
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	for _, res := range result.Results {
		switch {
		case !res.Passed():
			fmt.Printf("%s %s/%s: %s\n", red("FAIL"), res.Suite, res.Case.Name, res.Failure)
		case *verbose:
			fmt.Printf("%s %s/%s (%s)\n", green("ok  "), res.Suite, res.Case.Name, formatDuration(res.Duration))
		}
	}

	duration := formatDuration(time.Since(startTime))
	failed := len(result.Failed())
	if failed > 0 {
		color.Red("%d of %d cases failed after %s", failed, len(result.Results), duration)
		return 1
	}
	color.Green("All %d cases passed in %s", len(result.Results), duration)
	return 0
}

// report prints err against source and returns the exit code for it.
func report(name, source string, err error) int {
	ce, ok := errors.FromError(err)
	if !ok {
		color.Red("%s: %v", name, err)
		return 1
	}
	fmt.Fprint(os.Stderr, errors.NewErrorReporter(name, source).FormatError(ce))
	return 1
}

func parseFloats(list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
