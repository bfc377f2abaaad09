// ════════════════════════════════════════════════════════════════════════════════════════════════
// Thread Placement and Real-Time Scheduling
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Market Data Feed Handler Core
// Component: Core Pinning / Isolated-CPU Discovery
//
// Description:
//   Best-effort facility for binding the calling OS thread to a specific logical CPU and
//   raising it to SCHED_FIFO real-time priority, locking a goroutine to its OS thread and
//   pinning that thread to any caller-chosen core id. Every operation here returns a success
//   flag and never aborts the caller — thread placement is an optimization, not a correctness
//   requirement.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package threadutil

import (
	"runtime"
	"strconv"
	"strings"
)

// Pin locks the calling goroutine to its current OS thread and attempts to restrict that
// thread to cpuID. Callers that want the pin to stick for the goroutine's lifetime must not
// call runtime.UnlockOSThread afterward. Returns false if cpuID is out of range or the
// underlying syscall fails.
func Pin(cpuID int) bool {
	if cpuID < 0 || cpuID >= NumCPU() {
		return false
	}
	runtime.LockOSThread()
	return setAffinity(cpuID)
}

// SetRealtimeFIFO raises the calling OS thread to SCHED_FIFO at the given priority (1-99,
// higher is more urgent). Requires CAP_SYS_NICE or root on Linux; returns false on any
// platform or privilege failure rather than aborting the caller.
func SetRealtimeFIFO(priority int) bool {
	if priority < 1 || priority > 99 {
		return false
	}
	return setRealtimeFIFO(priority)
}

// SetThreadName assigns a short name to the calling OS thread, truncated to 15 bytes plus a
// null terminator per the Linux pthread_setname_np limit.
func SetThreadName(name string) bool {
	if len(name) > 15 {
		name = name[:15]
	}
	return setThreadName(name)
}

// HasRealtimeCapabilities reports whether the calling thread is currently scheduled SCHED_FIFO.
func HasRealtimeCapabilities() bool {
	return hasRealtimeCapabilities()
}

// NumCPU returns the number of online logical CPUs.
func NumCPU() int {
	return numCPU()
}

// IsolatedCPUs returns the CPU ids listed in /sys/devices/system/cpu/isolated, or an empty
// slice if the file is absent or unreadable (e.g. non-Linux, or no isolated cpus configured).
func IsolatedCPUs() []int {
	return isolatedCPUs()
}

// ParseCPUList parses a Linux cpulist string such as "2-7,10-15" into individual CPU ids.
// Any malformed token (not a number, or a range whose start exceeds its end) makes the whole
// parse yield an empty result.
func ParseCPUList(s string) []int {
	var cpus []int
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if dash := strings.IndexByte(token, '-'); dash >= 0 {
			start, ok1 := safeAtoi(token[:dash])
			end, ok2 := safeAtoi(token[dash+1:])
			if !ok1 || !ok2 || start > end {
				return nil
			}
			for i := start; i <= end; i++ {
				cpus = append(cpus, i)
			}
			continue
		}
		v, ok := safeAtoi(token)
		if !ok {
			return nil
		}
		cpus = append(cpus, v)
	}
	return cpus
}

func safeAtoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
