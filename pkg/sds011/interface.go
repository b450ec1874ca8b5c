package sds011

// Device defines the interface for the particulate sensor (real or mocked).
// Wake spins the fan up, Sleep powers it down between duty cycles, Read
// performs one query-mode measurement.
type Device interface {
	Connect() error
	Close() error
	Wake() error
	Sleep() error
	Read() (pm25, pm10 float32, err error)
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
