// ════════════════════════════════════════════════════════════════════════════════════════════════
// Thread Placement — Linux
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Uses golang.org/x/sys/unix's typed CPUSet wrapper for affinity. Real-time scheduling has no
// typed wrapper in x/sys/unix for sched_setscheduler, so that one syscall is issued directly
// against the SYS_SCHED_SETSCHEDULER number x/sys/unix exports, passing a local schedParam
// matching the kernel's sched_param layout.

//go:build linux

package threadutil

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const schedFIFO = 1

type schedParam struct {
	priority int32
}

func setAffinity(cpuID int) bool {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return false
	}
	return true
}

func setRealtimeFIFO(priority int) bool {
	param := schedParam{priority: int32(priority)}
	_, _, errno := unix.Syscall(
		unix.SYS_SCHED_SETSCHEDULER,
		0, // current thread
		uintptr(schedFIFO),
		uintptr(unsafe.Pointer(&param)),
	)
	return errno == 0
}

func setThreadName(name string) bool {
	b := append([]byte(name), 0)
	err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&b[0])), 0, 0, 0)
	return err == nil
}

func hasRealtimeCapabilities() bool {
	policy, _, errno := unix.Syscall(unix.SYS_SCHED_GETSCHEDULER, 0, 0, 0)
	return errno == 0 && int(policy) == schedFIFO
}

func numCPU() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return 1
	}
	return set.Count()
}

func isolatedCPUs() []int {
	data, err := os.ReadFile("/sys/devices/system/cpu/isolated")
	if err != nil {
		return nil
	}
	line := string(data)
	if i := indexOfNewline(line); i >= 0 {
		line = line[:i]
	}
	return ParseCPUList(line)
}

func indexOfNewline(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}
