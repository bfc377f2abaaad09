// ════════════════════════════════════════════════════════════════════════════════════════════════
// Monotonic Cycle Counter — ARM64 (CNTVCT_EL0)
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build arm64 && !noasm && !nocgo

package platform

/*
#include <stdint.h>

static inline uint64_t mdf_cntvct(void) {
    uint64_t val;
    __asm__ __volatile__("mrs %0, cntvct_el0" : "=r"(val));
    return val;
}
*/
import "C"

// CyclesNow returns the current value of the ARM64 virtual counter register.
//
//go:nosplit
//go:inline
func CyclesNow() uint64 {
	return uint64(C.mdf_cntvct())
}
