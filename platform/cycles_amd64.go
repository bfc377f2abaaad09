// ════════════════════════════════════════════════════════════════════════════════════════════════
// Monotonic Cycle Counter — AMD64 (RDTSCP)
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// RDTSCP additionally serializes against out-of-order execution (via the trailing RDTSCP
// semantics) and returns the executing core's APIC id in ECX, which we discard — callers
// needing per-core TSC offsets should not mix measurements taken on different cores without
// accounting for TSC skew; this module assumes a synchronized-TSC platform, the common case
// on modern x86-64 server hardware.

//go:build amd64 && !noasm && !nocgo

package platform

/*
#include <stdint.h>

static inline uint64_t mdf_rdtscp(void) {
    uint32_t lo, hi, aux;
    __asm__ __volatile__("rdtscp" : "=a"(lo), "=d"(hi), "=c"(aux));
    return ((uint64_t)hi << 32) | (uint64_t)lo;
}
*/
import "C"

// CyclesNow returns the current value of the per-core timestamp counter.
//
//go:nosplit
//go:inline
func CyclesNow() uint64 {
	return uint64(C.mdf_rdtscp())
}
