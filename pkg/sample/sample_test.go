package sample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		want   float32
	}{
		{
			name:   "single value",
			values: []float32{42.0},
			want:   42.0,
		},
		{
			name:   "odd count with outlier",
			values: []float32{10.0, 12.0, 11.0, 13.0, 100.0},
			want:   12.0,
		},
		{
			name:   "even count",
			values: []float32{10.0, 20.0},
			want:   15.0,
		},
		{
			name:   "even count unsorted",
			values: []float32{4.0, 1.0, 3.0, 2.0},
			want:   2.5,
		},
		{
			name:   "duplicates",
			values: []float32{5.0, 5.0, 5.0, 5.0, 5.0},
			want:   5.0,
		},
		{
			name:   "negative values",
			values: []float32{-3.0, -1.0, -2.0},
			want:   -2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet(len(tt.values))
			for _, v := range tt.values {
				require.True(t, s.Add(v))
			}

			got, err := s.Median()
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestMedian_Empty(t *testing.T) {
	s := NewSet(10)

	_, err := s.Median()
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestMedian_PermutationInvariant(t *testing.T) {
	values := []float32{7.5, 1.2, 99.0, 3.3, 8.8, 4.1, 0.5}

	ref := NewSet(len(values))
	for _, v := range values {
		ref.Add(v)
	}
	want, err := ref.Median()
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]float32, len(values))
		copy(shuffled, values)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		s := NewSet(len(shuffled))
		for _, v := range shuffled {
			s.Add(v)
		}
		got, err := s.Median()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSet_CapacityBound(t *testing.T) {
	s := NewSet(3)

	assert.True(t, s.Add(1.0))
	assert.True(t, s.Add(2.0))
	assert.True(t, s.Add(3.0))
	assert.False(t, s.Add(4.0), "add beyond capacity must be rejected")
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 3, s.Capacity())
	assert.Equal(t, []float32{1.0, 2.0, 3.0}, s.Values())
}

func TestSet_Reset(t *testing.T) {
	s := NewSet(2)
	s.Add(1.0)
	s.Add(2.0)

	s.Reset()

	assert.Equal(t, 0, s.Count())
	_, err := s.Median()
	assert.ErrorIs(t, err, ErrNoSamples)
	assert.True(t, s.Add(5.0), "reset must free capacity")
}

func TestSet_ValuesIsCopy(t *testing.T) {
	s := NewSet(2)
	s.Add(1.0)

	v := s.Values()
	v[0] = 99.0

	assert.Equal(t, []float32{1.0}, s.Values())
}
