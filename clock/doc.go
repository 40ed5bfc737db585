// Package clock provides logical version clocks for lazy, pull-based cache
// invalidation.
//
// A Clock is a monotonically increasing version stamp fed from a single
// process-wide counter (never wall time). A derived artifact owns one Clock
// and declares the Clocks it depends on; the artifact is fresh iff its own
// Clock is strictly newer than every dependency:
//
//	if table.clock.After(&compClock, &metricClock) {
//	    return cached // fresh, no recomputation
//	}
//	rebuild()
//	table.clock.Tick() // stamp "now"
//
// Invalidation is pull-based: writers only Tick their own Clock, readers
// compare on access. Multiple reads without an intervening Tick therefore
// never recompute twice, and recomputation order across independent readers
// does not matter.
package clock
