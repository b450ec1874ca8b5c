package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_Layout(t *testing.T) {
	p := Encode(12.0, 15.0, 450, 215)

	assert.Len(t, p[:], Size)
	// PM10 = 12.0 -> 1200 = 0x04B0, high byte first.
	assert.Equal(t, byte(0x04), p[0])
	assert.Equal(t, byte(0xB0), p[1])
	// PM2.5 = 15.0 -> 1500 = 0x05DC.
	assert.Equal(t, byte(0x05), p[2])
	assert.Equal(t, byte(0xDC), p[3])
	// Humidity = 450 = 0x01C2.
	assert.Equal(t, byte(0x01), p[4])
	assert.Equal(t, byte(0xC2), p[5])
	// Temperature = 215 = 0x00D7.
	assert.Equal(t, byte(0x00), p[6])
	assert.Equal(t, byte(0xD7), p[7])
}

func TestEncode_Rounding(t *testing.T) {
	tests := []struct {
		name  string
		value float32
		want  int16
	}{
		{name: "exact", value: 12.0, want: 1200},
		{name: "round up", value: 12.005, want: 1201},
		{name: "round down", value: 12.004, want: 1200},
		{name: "negative rounds away from zero", value: -12.005, want: -1201},
		{name: "zero", value: 0.0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Encode(tt.value, 0, 0, 0)
			got := int16(uint16(p[0])<<8 | uint16(p[1]))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		pm10, pm25  float32
		hum, temp   int16
	}{
		{name: "typical", pm10: 25.5, pm25: 12.3, hum: 450, temp: 215},
		{name: "negative temperature", pm10: 5.0, pm25: 2.5, hum: 900, temp: -125},
		{name: "boundary", pm10: 327.67, pm25: 0.01, hum: 0, temp: 0},
		{name: "zero", pm10: 0, pm25: 0, hum: 0, temp: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm10, pm25, hum, temp := Decode(Encode(tt.pm10, tt.pm25, tt.hum, tt.temp))
			assert.InDelta(t, tt.pm10, pm10, 0.005)
			assert.InDelta(t, tt.pm25, pm25, 0.005)
			assert.Equal(t, tt.hum, hum)
			assert.Equal(t, tt.temp, temp)
		})
	}
}

func TestEncode_OverflowCounter(t *testing.T) {
	before := Overflows()

	Encode(500.0, 0, 0, 0) // 50000 > 32767

	assert.Equal(t, before+1, Overflows())
}

func TestEncode_InRangeDoesNotCount(t *testing.T) {
	before := Overflows()

	Encode(327.67, -327.68, 0, 0)

	assert.Equal(t, before, Overflows())
}
