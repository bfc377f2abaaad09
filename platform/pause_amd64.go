// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Pause — AMD64
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build amd64 && !noasm && !nocgo

package platform

/*
#ifdef __x86_64__
static inline void mdf_cpu_pause() {
    __asm__ __volatile__("pause" ::: "memory");
}
#endif
*/
import "C"

// Pause emits the x86-64 PAUSE instruction, hinting to the core that the calling thread is
// spin-waiting. Reduces power draw and SMT sibling contention without yielding to the scheduler.
//
//go:nosplit
//go:inline
func Pause() {
	C.mdf_cpu_pause()
}
