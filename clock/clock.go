package clock

import "sync/atomic"

// counter is the process-wide version source. Every Tick consumes one value,
// so two Clocks ticked in sequence are strictly ordered.
var counter atomic.Uint64

// Clock is a logical version stamp. The zero value is older than any ticked
// Clock and is always stale. Clocks must not be copied after first use.
type Clock struct {
	v atomic.Uint64
}

// Tick stamps c with the next global version, making it newer than every
// Clock ticked before this call.
func (c *Clock) Tick() {
	c.v.Store(counter.Add(1))
}

// Reset returns c to the zero (always-stale) state, forcing the next
// freshness check to fail.
func (c *Clock) Reset() {
	c.v.Store(0)
}

// Value reports the current version stamp. Zero means never ticked.
func (c *Clock) Value() uint64 {
	return c.v.Load()
}

// After reports whether c is strictly newer than every dependency. A Clock
// that was never ticked is After nothing; a dependency list may be empty, in
// which case After reports whether c was ever ticked.
func (c *Clock) After(deps ...*Clock) bool {
	own := c.v.Load()
	if own == 0 {
		return false
	}
	for _, d := range deps {
		if own <= d.v.Load() {
			return false
		}
	}

	return true
}
