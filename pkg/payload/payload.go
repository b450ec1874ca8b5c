// Package payload implements the fixed-point uplink payload codec.
//
// The wire format is 8 bytes of big-endian signed 16-bit fields in the order
// PM10, PM2.5, humidity, temperature. Particulate fields carry the physical
// value scaled by 100 (two decimal digits); ambient fields carry the
// sensor-native integer units unchanged. The layout is the external contract
// consumed by uplink decoders and must not vary by host endianness.
package payload

import (
	"encoding/binary"
	"log"
	"sync/atomic"

	"github.com/chewxy/math32"
)

// Size is the exact payload length in bytes.
const Size = 8

// Field offsets within the payload.
const (
	offPM10 = 0
	offPM25 = 2
	offHum  = 4
	offTemp = 6
)

// MaxValue is the largest magnitude a scaled field can carry. Values beyond
// it truncate on the wire (documented boundary, not corrected in software).
const MaxValue = 327.67

var overflows atomic.Uint64

// Overflows returns the number of field encodings that exceeded the
// fixed-point range since process start.
func Overflows() uint64 {
	return overflows.Load()
}

// Encode packs one cycle's aggregated readings into the 8-byte payload.
// Particulate values are rounded half away from zero at two decimal digits;
// humidity and temperature pass through as-is.
func Encode(pm10, pm25 float32, humidity, temperature int16) [Size]byte {
	var p [Size]byte
	binary.BigEndian.PutUint16(p[offPM10:], uint16(scale(pm10)))
	binary.BigEndian.PutUint16(p[offPM25:], uint16(scale(pm25)))
	binary.BigEndian.PutUint16(p[offHum:], uint16(humidity))
	binary.BigEndian.PutUint16(p[offTemp:], uint16(temperature))
	return p
}

// Decode is the symmetric inverse of Encode.
func Decode(p [Size]byte) (pm10, pm25 float32, humidity, temperature int16) {
	pm10 = float32(int16(binary.BigEndian.Uint16(p[offPM10:]))) / 100
	pm25 = float32(int16(binary.BigEndian.Uint16(p[offPM25:]))) / 100
	humidity = int16(binary.BigEndian.Uint16(p[offHum:]))
	temperature = int16(binary.BigEndian.Uint16(p[offTemp:]))
	return
}

// scale converts a physical value to its ×100 fixed-point representation.
// Out-of-range magnitudes wrap silently on the wire but bump the overflow
// diagnostic so the condition is visible in logs and counters.
func scale(v float32) int16 {
	scaled := int64(math32.Round(v * 100))
	if scaled > 32767 || scaled < -32768 {
		overflows.Add(1)
		log.Printf("payload: value %.2f exceeds fixed-point range, truncating", v)
	}
	return int16(scaled)
}
