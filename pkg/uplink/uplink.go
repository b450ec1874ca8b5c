// Package uplink abstracts the wide-area link the node hands payloads to.
// Delivery and retransmission semantics belong to the transport; the duty
// cycle treats Send as fire-and-forget.
package uplink

// Uplink sends one encoded payload per duty cycle.
type Uplink interface {
	Send(payload []byte) error
	Close() error
}

// Ensure implementations satisfy Uplink.
var (
	_ Uplink = (*MQTT)(nil)
	_ Uplink = (*Recorder)(nil)
	_ Uplink = (*Console)(nil)
)
