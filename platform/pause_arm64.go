// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Pause — ARM64
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build arm64 && !noasm && !nocgo

package platform

/*
#ifdef __aarch64__
static inline void mdf_cpu_pause() {
    __asm__ __volatile__("yield" ::: "memory");
}
#endif
*/
import "C"

// Pause emits the ARM64 YIELD instruction as a spin-wait hint.
//
//go:nosplit
//go:inline
func Pause() {
	C.mdf_cpu_pause()
}
