// ════════════════════════════════════════════════════════════════════════════════════════════════
// Market Data Feed Handler — Demonstration Driver
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Market Data Feed Handler Core
// Component: CLI Entry Point
//
// Description:
//   Wires the core packages (pool, spscring, mpmcqueue, histogram, threadutil, lifecycle,
//   metrics) and the demonstration parser family into a runnable program: one pinned
//   producer/consumer pair over an SPSC ring for the primary venue, a bounded pool of
//   simulated secondary venues fanning into the MPMC queue, a reporter goroutine, and a
//   Prometheus /metrics endpoint. Network I/O, persistence, and every other core Non-goal stay
//   out of the packages this driver wires together — they live here only as synthetic traffic
//   generation.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
