package ambient

import "sync"

// Mock is a configurable in-memory Sensor for testing and development.
type Mock struct {
	mu       sync.Mutex
	temp     int16
	hum      int16
	failTemp bool
	failHum  bool
}

// NewMock creates a Mock reporting the given fixed values.
func NewMock(temperature, humidity int16) *Mock {
	return &Mock{temp: temperature, hum: humidity}
}

// Temperature returns the configured temperature, or Missing when the
// temperature channel is set to fail.
func (m *Mock) Temperature() int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTemp {
		return Missing
	}
	return m.temp
}

// Humidity returns the configured humidity, or Missing when the humidity
// channel is set to fail.
func (m *Mock) Humidity() int16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failHum {
		return Missing
	}
	return m.hum
}

// Set updates the reported values.
func (m *Mock) Set(temperature, humidity int16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.temp = temperature
	m.hum = humidity
}

// Fail configures per-channel read failures.
func (m *Mock) Fail(temperature, humidity bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failTemp = temperature
	m.failHum = humidity
}
