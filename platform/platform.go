// ════════════════════════════════════════════════════════════════════════════════════════════════
// Platform Primitives
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Market Data Feed Handler Core
// Component: Monotonic Cycle Counter, Spin Hints, Branch/Prefetch Helpers
//
// Description:
//   Hot-path primitives shared by every lock-free data structure in this module: a per-core
//   cycle counter used for nanosecond-scale timestamping, a CPU pause hint for spin loops, and
//   branch/prefetch hints that are semantically no-ops but document intent at call sites.
//
// Calibration:
//   cycles_to_ns/cycles_to_us depend on a one-time TSC calibration performed before any producer
//   or consumer thread starts (see Calibrate). Recording latency before calibration yields
//   degraded precision, never a crash — the frequency defaults to a conservative 1GHz estimate.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package platform

import (
	"sync/atomic"
	"time"
)

// cyclesPerSecond holds the calibrated TSC (or platform-equivalent) frequency.
// Written once by Calibrate before producer/consumer threads spawn, then read-only —
// a process-wide singleton, never reconfigured at runtime.
var cyclesPerSecond uint64 = 1_000_000_000 // conservative 1GHz default until calibrated

// calibrated flags whether Calibrate has run; only used for diagnostics.
var calibrated uint32

// Calibrate measures cyclesNow()'s tick rate against the wall clock by sampling across a
// 100ms sleep. Must run once before any latency is recorded; safe to call more than once
// (each call overwrites the frequency estimate), but callers should call it exactly once
// at startup.
//
// If the calibration sleep is interrupted or yields an implausible delta, the previous
// estimate is kept — a degraded-precision recording is preferred over a divide-by-zero.
func Calibrate() {
	startWall := time.Now()
	startCycles := CyclesNow()

	time.Sleep(100 * time.Millisecond)

	elapsedWall := time.Since(startWall)
	endCycles := CyclesNow()

	if elapsedWall <= 0 {
		return
	}

	deltaCycles := endCycles - startCycles
	hz := uint64(float64(deltaCycles) / elapsedWall.Seconds())
	if hz == 0 {
		return
	}

	atomic.StoreUint64(&cyclesPerSecond, hz)
	atomic.StoreUint32(&calibrated, 1)
}

// Calibrated reports whether Calibrate has successfully run.
//
//go:nosplit
//go:inline
func Calibrated() bool {
	return atomic.LoadUint32(&calibrated) == 1
}

// CyclesPerSecond returns the calibrated tick frequency.
//
//go:nosplit
//go:inline
func CyclesPerSecond() uint64 {
	return atomic.LoadUint64(&cyclesPerSecond)
}

// CyclesToNS converts a cycle delta into nanoseconds using the calibrated frequency.
//
//go:nosplit
//go:inline
func CyclesToNS(cycles uint64) uint64 {
	hz := atomic.LoadUint64(&cyclesPerSecond)
	if hz == 0 {
		return 0
	}
	return cycles * 1_000_000_000 / hz
}

// CyclesToUS converts a cycle delta into microseconds using the calibrated frequency.
//
//go:nosplit
//go:inline
func CyclesToUS(cycles uint64) uint64 {
	hz := atomic.LoadUint64(&cyclesPerSecond)
	if hz == 0 {
		return 0
	}
	return cycles * 1_000_000 / hz
}

// Likely and Unlikely are branch-hint no-ops. Go's compiler has no intrinsic for
// __builtin_expect; these exist so call sites can document the expected branch
// without pretending to affect codegen.
//
//go:nosplit
//go:inline
func Likely(b bool) bool { return b }

//go:nosplit
//go:inline
func Unlikely(b bool) bool { return b }

// Scoped starts a latency measurement against hist and returns a closer that records the
// elapsed time when called. Intended for a single deferred call bracketing a parse or
// processing step: `defer platform.Scoped(hist)()`.
func Scoped(hist recorder) func() {
	start := CyclesNow()
	return func() {
		hist.Record(CyclesToNS(CyclesNow() - start))
	}
}

// recorder is the minimal capability Scoped needs from a latency histogram, avoiding a direct
// import of the histogram package from this low-level one.
type recorder interface {
	Record(latencyNS uint64)
}
