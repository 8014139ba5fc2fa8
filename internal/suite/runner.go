package suite

import (
	"fmt"
	"time"

	"formula"
)

// Result is the outcome of one case. Failure is empty when the case passed.
type Result struct {
	Suite    string
	Case     Case
	Got      []int
	Err      error
	Failure  string
	Duration time.Duration
}

func (r Result) Passed() bool {
	return r.Failure == ""
}

type Report struct {
	Results []Result
}

func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Run evaluates every case of every suite.
func Run(suites ...*Suite) Report {
	var report Report
	for _, s := range suites {
		for _, c := range s.Cases {
			res := RunCase(c)
			res.Suite = s.Name
			report.Results = append(report.Results, res)
		}
	}
	return report
}

// RunCase compiles c.Source once and evaluates it c.Repeat times with the
// case's source of randomness.
func RunCase(c Case) Result {
	start := time.Now()
	res := Result{Case: c}

	f, err := formula.Compile(c.Source)
	if err != nil {
		res.Err = err
		res.Failure = checkError(c, err)
		res.Duration = time.Since(start)
		return res
	}

	src := sourceFor(c)
	for range max(1, c.Repeat) {
		v, err := f.Evaluate(c.Params, src)
		if err != nil {
			res.Err = err
			res.Failure = checkError(c, err)
			res.Duration = time.Since(start)
			return res
		}
		res.Got = append(res.Got, v)
		if failure := checkValue(c, v); failure != "" {
			res.Failure = failure
			break
		}
	}
	res.Duration = time.Since(start)
	return res
}

func sourceFor(c Case) formula.Source {
	switch {
	case len(c.Draws) > 0:
		return formula.NewReplay(c.Draws...)
	case c.Seed != nil:
		return formula.NewSeededSource(*c.Seed)
	}
	return nil
}

func checkError(c Case, err error) string {
	if c.Error == "" {
		return fmt.Sprintf("unexpected error: %v", err)
	}
	if code := formula.ErrorCode(err); code != c.Error {
		return fmt.Sprintf("expected error %s, got %s (%v)", c.Error, code, err)
	}
	return ""
}

func checkValue(c Case, v int) string {
	switch {
	case c.Error != "":
		return fmt.Sprintf("expected error %s, got value %d", c.Error, v)
	case c.Want != nil && v != *c.Want:
		return fmt.Sprintf("expected %d, got %d", *c.Want, v)
	case c.Between != nil && (v < c.Between[0] || v > c.Between[1]):
		return fmt.Sprintf("expected a value in [%d, %d], got %d", c.Between[0], c.Between[1], v)
	}
	return ""
}
