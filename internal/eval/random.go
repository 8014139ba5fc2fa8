package eval

import "math/rand/v2"

// Source is the randomness provider for range draws. Float64 returns a
// value in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() float64

func (f SourceFunc) Float64() float64 { return f() }

// DefaultSource draws from the math/rand/v2 global generator.
var DefaultSource Source = SourceFunc(rand.Float64)

// NewSeededSource returns a reproducible generator for seed.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fixed returns a source that always draws v.
func Fixed(v float64) Source {
	return SourceFunc(func() float64 { return v })
}

// Replay hands out a fixed sequence of draws, starting over once the
// sequence is exhausted. It counts how many draws were taken.
type Replay struct {
	values []float64
	next   int
	draws  int
}

func NewReplay(values ...float64) *Replay {
	return &Replay{values: values}
}

func (r *Replay) Float64() float64 {
	r.draws++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next]
	r.next = (r.next + 1) % len(r.values)
	return v
}

// Draws is the number of values taken so far.
func (r *Replay) Draws() int {
	return r.draws
}

// Reset rewinds the sequence and the draw counter.
func (r *Replay) Reset() {
	r.next = 0
	r.draws = 0
}
