// ════════════════════════════════════════════════════════════════════════════════════════════════
// Thread Placement — Fallback
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Non-Linux platforms have no portable affinity/real-time-scheduling API. Every operation
// here reports failure rather than silently doing nothing unobserved.

//go:build !linux

package threadutil

import "runtime"

func setAffinity(cpuID int) bool       { return false }
func setRealtimeFIFO(priority int) bool { return false }
func setThreadName(name string) bool    { return false }
func hasRealtimeCapabilities() bool     { return false }
func numCPU() int                       { return runtime.NumCPU() }
func isolatedCPUs() []int               { return nil }
