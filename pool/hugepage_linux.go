// ════════════════════════════════════════════════════════════════════════════════════════════════
// Huge-Page Advisory Locking — Linux
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Go's allocator does not expose a MAP_HUGETLB path for ordinary slices, so the arena itself
// cannot be mmap'd with huge pages. The closest equivalent available to a GC-managed slice is
// madvise(MADV_HUGEPAGE), which asks the kernel to back the region with transparent huge pages
// opportunistically, plus mlock to keep it resident. Both are best-effort: failure of either
// silently leaves the pool on normal pages.

//go:build linux

package pool

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/nanofeed/marketfeed/coldlog"
	"github.com/nanofeed/marketfeed/event"
)

func lockMemory(arena []event.Event) bool {
	if len(arena) == 0 {
		return false
	}
	length := len(arena) * int(unsafe.Sizeof(arena[0]))
	base := unsafe.Pointer(&arena[0])
	b := unsafe.Slice((*byte)(base), length)
	if err := unix.Madvise(b, unix.MADV_HUGEPAGE); err != nil {
		coldlog.DropError("pool: madvise(MADV_HUGEPAGE) failed, falling back to normal pages", err)
		return false
	}
	if err := unix.Mlock(b); err != nil {
		coldlog.DropError("pool: mlock failed, falling back to normal pages", err)
		return false
	}
	return true
}
