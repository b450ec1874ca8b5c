package sds011

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the fixed SDS011 baud rate (9600 8N1).
	DefaultBaudRate = 9600
	// readTimeout bounds a single port read while scanning for a reply frame.
	readTimeout = 500 * time.Millisecond
	// replyDeadline bounds the total wait for a measurement reply.
	replyDeadline = 3 * time.Second
)

// Serial is an SDS011 particulate sensor attached to a serial port.
type Serial struct {
	port     string
	baudRate int

	conn      serial.Port
	mu        sync.Mutex
	connected bool
}

// New creates a new Serial instance for the given port.
func New(port string, baudRate int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
	}
}

// Connect opens the serial port.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	conn, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}
	if err := conn.SetReadTimeout(readTimeout); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set read timeout: %w", err)
	}

	d.conn = conn
	d.connected = true

	return nil
}

// Close closes the serial port.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	err := d.conn.Close()
	d.conn = nil
	d.connected = false

	return err
}

// IsConnected returns whether the port is currently open.
func (d *Serial) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Wake commands the sensor to spin the fan and laser up. The sensor has no
// readiness handshake; the caller must allow the configured warm-up time
// before trusting readings.
func (d *Serial) Wake() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write(workCommand()); err != nil {
		return fmt.Errorf("failed to send work command: %w", err)
	}
	// The wake reply is unreliable when the sensor is mid power-up; drop
	// whatever arrives so it cannot be mistaken for a measurement later.
	d.drain()
	return nil
}

// Sleep commands the sensor to power the fan and laser down.
func (d *Serial) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write(sleepCommand()); err != nil {
		return fmt.Errorf("failed to send sleep command: %w", err)
	}
	d.drain()
	return nil
}

// Read performs one query-mode measurement.
func (d *Serial) Read() (pm25, pm10 float32, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return 0, 0, fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write(queryCommand()); err != nil {
		return 0, 0, fmt.Errorf("failed to send query command: %w", err)
	}

	frame, err := d.readFrame()
	if err != nil {
		return 0, 0, err
	}

	return parseReading(frame)
}

// readFrame scans the input stream for the next complete measurement frame.
// Partial frames and non-measurement replies are skipped byte by byte.
func (d *Serial) readFrame() ([]byte, error) {
	deadline := time.Now().Add(replyDeadline)
	buf := make([]byte, 0, replyLen)
	chunk := make([]byte, replyLen)

	for time.Now().Before(deadline) {
		n, err := d.conn.Read(chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to read from serial port: %w", err)
		}
		if n == 0 {
			continue // read timeout, try again until the deadline
		}
		buf = append(buf, chunk[:n]...)

		// Align the buffer on a measurement frame head.
		for len(buf) >= 2 && (buf[0] != frameHead || buf[1] != replyMarker) {
			buf = buf[1:]
		}
		if len(buf) >= replyLen {
			return buf[:replyLen], nil
		}
	}

	return nil, fmt.Errorf("timed out waiting for measurement frame")
}

// drain discards any pending reply bytes.
func (d *Serial) drain() {
	chunk := make([]byte, replyLen)
	for {
		n, err := d.conn.Read(chunk)
		if err != nil || n == 0 {
			return
		}
	}
}
