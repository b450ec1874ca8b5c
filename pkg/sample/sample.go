package sample

import (
	"errors"
	"sort"
)

// ErrNoSamples is returned when an aggregate is requested from an empty set.
var ErrNoSamples = errors.New("no valid samples")

// Set is a fixed-capacity collection of readings for one physical channel.
// Failed reads never occupy a slot, so the effective count can be less than
// the capacity.
type Set struct {
	values   []float32
	capacity int
}

// NewSet creates an empty Set with the given capacity.
func NewSet(capacity int) *Set {
	if capacity <= 0 {
		capacity = 1
	}
	return &Set{
		values:   make([]float32, 0, capacity),
		capacity: capacity,
	}
}

// Add appends a reading. It returns false once the set is full.
func (s *Set) Add(v float32) bool {
	if len(s.values) >= s.capacity {
		return false
	}
	s.values = append(s.values, v)
	return true
}

// Count returns the number of readings collected so far.
func (s *Set) Count() int {
	return len(s.values)
}

// Capacity returns the maximum number of readings the set holds.
func (s *Set) Capacity() int {
	return s.capacity
}

// Values returns a copy of the collected readings in arrival order.
func (s *Set) Values() []float32 {
	out := make([]float32, len(s.values))
	copy(out, s.values)
	return out
}

// Reset discards all collected readings, keeping the capacity.
func (s *Set) Reset() {
	s.values = s.values[:0]
}

// Median returns the statistical median of the collected readings: sort
// ascending, middle element for an odd count, mean of the two middle elements
// for an even count. The result depends only on the multiset of values, not
// on arrival order. Returns ErrNoSamples for an empty set.
func (s *Set) Median() (float32, error) {
	n := len(s.values)
	if n == 0 {
		return 0, ErrNoSamples
	}

	sorted := make([]float32, n)
	copy(sorted, s.values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}
