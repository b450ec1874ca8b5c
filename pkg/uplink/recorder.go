package uplink

import (
	"encoding/hex"
	"fmt"
	"log"
	"sync"
)

// Recorder captures sent payloads in memory. Used by tests and as the sink
// behind Console.
type Recorder struct {
	mu       sync.Mutex
	payloads [][]byte
	fail     bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records a copy of the payload.
func (r *Recorder) Send(payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail {
		return fmt.Errorf("send failure injected")
	}

	p := make([]byte, len(payload))
	copy(p, payload)
	r.payloads = append(r.payloads, p)
	return nil
}

// Close is a no-op.
func (r *Recorder) Close() error {
	return nil
}

// Payloads returns the captured payloads in send order.
func (r *Recorder) Payloads() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]byte, len(r.payloads))
	copy(out, r.payloads)
	return out
}

// SetFail makes subsequent Sends fail.
func (r *Recorder) SetFail(fail bool) {
	r.mu.Lock()
	r.fail = fail
	r.mu.Unlock()
}

// Console logs each payload in hex instead of transmitting it. Useful for
// bring-up without a broker.
type Console struct{}

// Send logs the payload.
func (Console) Send(payload []byte) error {
	log.Printf("uplink: %s", hex.EncodeToString(payload))
	return nil
}

// Close is a no-op.
func (Console) Close() error {
	return nil
}
