package sds011

import (
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/itohio/godust/pkg/config"
)

// Mock simulates an SDS011 sensor for testing and development.
type Mock struct {
	cfg *config.MockConfig

	mu        sync.Mutex
	connected bool
	awake     bool
	reads     int
	startTime time.Time
}

// NewMock creates a new mocked sensor instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			PM25:       12.0,
			PM10:       25.0,
			NoiseLevel: 2.0,
		}
	}

	return &Mock{
		cfg: cfg,
	}
}

// Connect simulates opening the sensor.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()
	return nil
}

// Close simulates closing the sensor.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	m.awake = false
	return nil
}

// IsConnected returns whether the mock is "open".
func (m *Mock) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Wake marks the simulated fan as running.
func (m *Mock) Wake() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}
	m.awake = true
	return nil
}

// Sleep marks the simulated fan as stopped.
func (m *Mock) Sleep() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}
	m.awake = false
	return nil
}

// Read returns a simulated measurement: the configured base level plus
// deterministic pseudo-noise. A sleeping sensor does not answer queries.
// When FailEvery is N > 0, every Nth read fails to exercise the caller's
// skipped-slot path.
func (m *Mock) Read() (pm25, pm10 float32, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return 0, 0, fmt.Errorf("not connected")
	}
	if !m.awake {
		return 0, 0, fmt.Errorf("sensor is sleeping")
	}

	m.reads++
	if m.cfg.FailEvery > 0 && m.reads%m.cfg.FailEvery == 0 {
		return 0, 0, fmt.Errorf("simulated read failure (read %d)", m.reads)
	}

	elapsed := float32(time.Since(m.startTime).Seconds())
	noise := (math32.Sin(elapsed*1.3) + math32.Cos(elapsed*0.7)) * m.cfg.NoiseLevel * 0.5

	pm25 = m.cfg.PM25 + noise
	pm10 = m.cfg.PM10 + noise*1.5
	if pm25 < 0 {
		pm25 = 0
	}
	if pm10 < 0 {
		pm10 = 0
	}

	return pm25, pm10, nil
}
