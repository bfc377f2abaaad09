// ════════════════════════════════════════════════════════════════════════════════════════════════
// Monotonic Cycle Counter — Fallback
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Platforms without an exposed hardware tick register (or builds with asm/cgo disabled) fall
// back to the Go runtime's monotonic clock reading, expressed in nanoseconds. Calibrate then
// measures a 1-to-1 "frequency" of ~1e9 ticks/second, so CyclesToNS/CyclesToUS degrade
// gracefully to a straight nanosecond pass-through instead of silently misreporting latency.

//go:build (!amd64 && !arm64) || noasm || nocgo

package platform

import "time"

//go:nosplit
//go:inline
func CyclesNow() uint64 {
	return uint64(time.Now().UnixNano())
}
