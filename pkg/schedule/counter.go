package schedule

import (
	"math"
	"sync"
)

// WakeCounter counts wake-timer ticks delivered while the main control flow
// sleeps. Tick is called from the timer callback and must stay non-blocking
// and constant-time; everything else runs on the main control flow. The
// counter saturates at the maximum representable value instead of wrapping,
// and only an explicit Clear (or ConsumeIfAtLeast) resets it.
type WakeCounter struct {
	mu sync.Mutex
	n  uint32
}

// Tick increments the counter by one, saturating at MaxUint32.
func (c *WakeCounter) Tick() {
	c.mu.Lock()
	if c.n < math.MaxUint32 {
		c.n++
	}
	c.mu.Unlock()
}

// Read returns the current tick count.
func (c *WakeCounter) Read() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Clear resets the counter to zero.
func (c *WakeCounter) Clear() {
	c.mu.Lock()
	c.n = 0
	c.mu.Unlock()
}

// ConsumeIfAtLeast clears the counter and returns true when at least target
// ticks have accumulated. The read and the clear happen inside one critical
// section so a tick arriving in between cannot be lost.
func (c *WakeCounter) ConsumeIfAtLeast(target uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n < target {
		return false
	}
	c.n = 0
	return true
}
