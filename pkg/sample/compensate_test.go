package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePM25(t *testing.T) {
	tests := []struct {
		name     string
		pm25     float32
		humidity float32
	}{
		{name: "dry air", pm25: 20.0, humidity: 10.0},
		{name: "moderate humidity", pm25: 20.0, humidity: 50.0},
		{name: "high humidity", pm25: 20.0, humidity: 90.0},
	}

	prev := float32(0)
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePM25(tt.pm25, tt.humidity)
			assert.Greater(t, got, float32(0))
			assert.LessOrEqual(t, got, tt.pm25, "compensation must not increase the reading")
			if i > 0 {
				assert.Less(t, got, prev, "higher humidity must correct harder")
			}
			prev = got
		})
	}
}

func TestNormalizePM10(t *testing.T) {
	// At negligible humidity the correction is negligible.
	got := NormalizePM10(30.0, 1.0)
	assert.InDelta(t, 30.0, got, 0.01)

	// At saturation the divisor is 1 + 0.81559.
	got = NormalizePM10(30.0, 100.0)
	assert.InDelta(t, 30.0/1.81559, got, 0.01)
}

func TestNormalizePM25_Saturation(t *testing.T) {
	got := NormalizePM25(20.0, 100.0)
	assert.InDelta(t, 20.0/1.48756, got, 0.01)
}
