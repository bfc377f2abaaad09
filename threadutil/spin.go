package threadutil

import (
	"runtime"

	"github.com/nanofeed/marketfeed/platform"
)

// SpinWait busy-waits for the given number of CPU-pause iterations.
//
//go:nosplit
func SpinWait(iterations int) {
	for i := 0; i < iterations; i++ {
		platform.Pause()
	}
}

// Yield hands the calling goroutine's timeslice back to the Go scheduler.
func Yield() {
	runtime.Gosched()
}
