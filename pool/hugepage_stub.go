// ════════════════════════════════════════════════════════════════════════════════════════════════
// Huge-Page Advisory Locking — Fallback
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build !linux

package pool

import "github.com/nanofeed/marketfeed/event"

func lockMemory(arena []event.Event) bool {
	return false
}
