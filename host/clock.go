package host

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock is the host time source. Timestamp is a unix-seconds wall clock,
// Sequence a monotonic counter. Expiry comparisons read the clock freshly
// on every call; values are never cached.
type Clock interface {
	Timestamp() uint64
	Sequence() uint64
}

// SystemClock reads the operating system clock. Sequence increments on
// every read, so two invocations never observe the same value.
type SystemClock struct {
	seq atomic.Uint64
}

func (c *SystemClock) Timestamp() uint64 {
	return uint64(time.Now().Unix())
}

func (c *SystemClock) Sequence() uint64 {
	return c.seq.Add(1)
}

// ManualClock is a settable clock for tests.
type ManualClock struct {
	mu  sync.Mutex
	ts  uint64
	seq uint64
}

func NewManualClock(ts uint64) *ManualClock {
	return &ManualClock{ts: ts}
}

func (c *ManualClock) Timestamp() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ts
}

func (c *ManualClock) Sequence() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Set moves the clock to an absolute timestamp.
func (c *ManualClock) Set(ts uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ts = ts
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ts += d
}
