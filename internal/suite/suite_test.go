package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenCases(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "testdata", "cases.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, s.Cases)
	assert.Equal(t, "formula", s.Name)

	report := Run(s)
	require.Len(t, report.Results, len(s.Cases))
	for _, res := range report.Results {
		assert.True(t, res.Passed(), "%s: %s", res.Case.Name, res.Failure)
	}
	assert.True(t, report.Passed())
}

func TestDecode(t *testing.T) {
	doc := `
name: tiny
cases:
  - name: sum
    source: 1 + 1
    want: 2
  - name: dice
    source: "[1..6]"
    seed: 9
    repeat: 10
    between: [1, 6]
`
	s, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, s.Cases, 2)
	assert.Equal(t, "tiny", s.Name)
	assert.Equal(t, 2, *s.Cases[0].Want)
	assert.Equal(t, uint64(9), *s.Cases[1].Seed)
	assert.Equal(t, []int{1, 6}, s.Cases[1].Between)

	report := Run(s)
	assert.True(t, report.Passed())
	assert.Len(t, report.Results[1].Got, 10)
}

func TestDecodeRejectsMalformedCases(t *testing.T) {
	docs := map[string]string{
		"no expectation":   "cases:\n  - source: 1\n",
		"two expectations": "cases:\n  - source: 1\n    want: 1\n    error: E0100\n",
		"bad between":      "cases:\n  - source: 1\n    between: [3, 1]\n",
		"draws and seed":   "cases:\n  - source: 1\n    want: 1\n    draws: [0]\n    seed: 1\n",
		"unknown field":    "cases:\n  - source: 1\n    want: 1\n    expect: 2\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestFailuresAreReported(t *testing.T) {
	want := 7
	s := &Suite{Name: "failing", Cases: []Case{
		{Name: "wrong value", Source: "2+2", Want: &want},
		{Name: "missing error", Source: "1", Error: "E0100"},
		{Name: "wrong error", Source: "(1", Error: "E0100"},
		{Name: "unexpected error", Source: "p1", Want: &want},
		{Name: "out of bounds", Source: "[5..9]", Draws: []float64{0.99}, Between: []int{1, 4}},
	}}

	report := Run(s)
	failed := report.Failed()
	require.Len(t, failed, 5)
	assert.False(t, report.Passed())

	assert.Contains(t, failed[0].Failure, "expected 7, got 4")
	assert.Contains(t, failed[1].Failure, "expected error E0100, got value 1")
	assert.Contains(t, failed[2].Failure, "got E0101")
	assert.Contains(t, failed[3].Failure, "unexpected error")
	assert.Contains(t, failed[4].Failure, "[1, 4]")
	assert.Equal(t, "failing", failed[0].Suite)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("cases:\n  - source: 1\n    want: 1\n"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.yml"), []byte("name: b\ncases: []\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	suites, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "a.yaml", suites[0].Name)
	assert.Equal(t, "b", suites[1].Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
