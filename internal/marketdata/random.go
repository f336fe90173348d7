package marketdata

import (
	"math/rand"
	"time"
)

// Source supplies uniform draws in [0, 1). Every random decision the
// synthesizers make goes through a Source so tests can replay exact values.
type Source interface {
	Float64() float64
}

// NewSource returns a math/rand backed Source. A zero seed is replaced by the
// current time; any other seed gives a bit-reproducible sequence.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of draws, wrapping around at the end.
type SequenceSource struct {
	values []float64
	next   int
}

// NewSequenceSource creates a source that returns values in order.
// An empty list yields 0.5 forever.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 returns the next value of the sequence.
func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed.
func (s *SequenceSource) Draws() int {
	return s.next
}
