// Package suite runs formula cases described in YAML files.
//
//	name: basics
//	cases:
//	  - name: precedence
//	    source: 2+2*2
//	    want: 6
//	  - name: low draw
//	    source: "[1..3]"
//	    draws: [0]
//	    want: 1
package suite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Suite struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"-"`
	Cases []Case `yaml:"cases"`
}

// Case is one formula and the outcome expected from it. Exactly one of
// Want, Between and Error states the expectation.
type Case struct {
	Name    string    `yaml:"name"`
	Source  string    `yaml:"source"`
	Params  []float64 `yaml:"params,omitempty"`
	Draws   []float64 `yaml:"draws,omitempty"` // replayed in order, cycling
	Seed    *uint64   `yaml:"seed,omitempty"`
	Want    *int      `yaml:"want,omitempty"`
	Between []int     `yaml:"between,omitempty"` // inclusive [lo, hi]
	Error   string    `yaml:"error,omitempty"`   // expected error code
	Repeat  int       `yaml:"repeat,omitempty"`  // evaluations, defaults to 1
}

// Load reads a suite from a YAML file.
func Load(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint:errcheck // read only

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse case file %s: %w", path, err)
	}
	s.Path = path
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// LoadDir loads every .yaml or .yml file below dir.
func LoadDir(dir string) ([]*Suite, error) {
	var suites []*Suite
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext == ".yaml" || ext == ".yml" {
			s, err := Load(path)
			if err != nil {
				return err
			}
			suites = append(suites, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suites, nil
}

// Decode reads a suite from r and checks that every case is well formed.
func Decode(r io.Reader) (*Suite, error) {
	var s Suite
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && err != io.EOF {
		return nil, err
	}
	for i := range s.Cases {
		if err := s.Cases[i].validate(); err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i+1, s.Cases[i].Name, err)
		}
	}
	return &s, nil
}

func (c *Case) validate() error {
	expectations := 0
	if c.Want != nil {
		expectations++
	}
	if c.Between != nil {
		expectations++
		if len(c.Between) != 2 || c.Between[0] > c.Between[1] {
			return fmt.Errorf("between must be [lo, hi] with lo <= hi, got %v", c.Between)
		}
	}
	if c.Error != "" {
		expectations++
	}
	if expectations != 1 {
		return fmt.Errorf("exactly one of want, between or error is required")
	}
	if len(c.Draws) > 0 && c.Seed != nil {
		return fmt.Errorf("draws and seed are mutually exclusive")
	}
	if c.Repeat < 0 {
		return fmt.Errorf("repeat must not be negative")
	}
	return nil
}
