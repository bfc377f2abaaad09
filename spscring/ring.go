// ============================================================================
// LOCK-FREE SPSC EVENT RING
// ============================================================================
//
// Single-producer/single-consumer ring queue carrying event.Event values,
// sized for the ingest path between a venue parser goroutine and the
// dispatch goroutine that drains it into the MPMC fan-out queue.
//
// Architecture overview:
//   - Separated head/tail cursors on isolated cache lines
//   - One slot always reserved unused, so a plain head==tail/next==head
//     comparison tells empty and full apart without a per-slot sequence word
//   - Power-of-2 sizing with bit masking for O(1) operations
//   - Zero allocation during steady-state operation
//
// Safety model:
//   - SPSC discipline required: single producer, single consumer only
//   - External overflow management: Push returns false when full
//   - Pop copies the slot into the caller's Event; no returned pointer
//     aliases ring storage, so there is no pointer-lifetime hazard to
//     document for callers that hold the result past the next Pop.

package spscring

import (
	"sync/atomic"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/platform"
)

// Ring implements a cache-isolated SPSC ring buffer of event.Event values.
// One slot is always left unoccupied so that full and empty are both
// distinguishable from a plain head==tail comparison — usable capacity is
// one less than the slice length, matching the reserved-slot convention in
// original_source's circular_buffer.hpp.
//
//go:notinheap
//go:align 64
type Ring struct {
	_    [64]byte
	head uint64

	_    [56]byte
	tail uint64

	_ [56]byte

	mask          uint64
	capacity      uint64
	buf           []event.Event
	highWatermark uint64
	lowWatermark  uint64

	_ [1]uint64
}

// New creates a ring with the given power-of-2 capacity. Watermarks default
// to 90%/10% of capacity. Usable occupancy tops out at capacity-1: one slot
// is always reserved so Push can tell full apart from empty.
//
//go:norace
//go:nocheckptr
//go:nosplit
func New(size int) *Ring {
	if size <= 0 || size&(size-1) != 0 {
		panic("spscring: size must be >0 and power of two")
	}

	return &Ring{
		mask:          uint64(size - 1),
		capacity:      uint64(size),
		buf:           make([]event.Event, size),
		highWatermark: uint64(size) * 9 / 10,
		lowWatermark:  uint64(size) / 10,
	}
}

// Push enqueues val by value. Returns false if the ring is full.
//
//go:norace
//go:nocheckptr
//go:nosplit
func (r *Ring) Push(val *event.Event) bool {
	t := r.tail
	next := (t + 1) & r.mask

	if next == atomic.LoadUint64(&r.head) {
		return false
	}

	r.buf[t] = *val
	atomic.StoreUint64(&r.tail, next)
	return true
}

// Pop dequeues the next available event into out. Returns false if the ring
// is empty.
//
//go:norace
//go:nocheckptr
//go:nosplit
func (r *Ring) Pop(out *event.Event) bool {
	h := r.head

	if h == atomic.LoadUint64(&r.tail) {
		return false
	}

	*out = r.buf[h]
	atomic.StoreUint64(&r.head, (h+1)&r.mask)
	return true
}

// Peek copies the next available event into out without removing it.
// Returns false if the ring is empty.
//
//go:norace
//go:nocheckptr
//go:nosplit
func (r *Ring) Peek(out *event.Event) bool {
	h := r.head

	if h == atomic.LoadUint64(&r.tail) {
		return false
	}

	*out = r.buf[h]
	return true
}

// PopWait blocks via CPU-relaxation spinning until an event becomes
// available, then copies it into out. Intended only for a pinned,
// dedicated consumer thread — see threadutil.
//
//go:norace
//go:nocheckptr
//go:nosplit
func (r *Ring) PopWait(out *event.Event) {
	for {
		if r.Pop(out) {
			return
		}
		platform.Pause()
	}
}

// Capacity returns the ring's fixed slot count. Usable occupancy tops out
// at Capacity()-1; see New.
func (r *Ring) Capacity() int { return int(r.capacity) }

// Size returns an approximate occupancy count, valid only as a monitoring
// signal — concurrent Push/Pop can race this read.
func (r *Ring) Size() int {
	h := atomic.LoadUint64(&r.head)
	t := atomic.LoadUint64(&r.tail)
	if t >= h {
		return int(t - h)
	}
	return int(r.capacity - h + t)
}

// Empty reports whether the ring currently holds no events.
func (r *Ring) Empty() bool {
	return atomic.LoadUint64(&r.head) == atomic.LoadUint64(&r.tail)
}

// Full reports whether the ring has reached its usable capacity
// (Capacity()-1 events) and the next Push would fail.
func (r *Ring) Full() bool {
	t := atomic.LoadUint64(&r.tail)
	next := (t + 1) & r.mask
	return next == atomic.LoadUint64(&r.head)
}

// HighWatermarkExceeded reports whether occupancy has reached 90% of
// capacity.
func (r *Ring) HighWatermarkExceeded() bool {
	return uint64(r.Size()) >= r.highWatermark
}

// BelowLowWatermark reports whether occupancy has fallen to 10% of capacity
// or below.
func (r *Ring) BelowLowWatermark() bool {
	return uint64(r.Size()) <= r.lowWatermark
}

// SetWatermarks overrides the default 90%/10% monitoring thresholds.
func (r *Ring) SetWatermarks(low, high uint64) {
	r.lowWatermark = low
	r.highWatermark = high
}

// Reset rewinds both cursors to zero. Not safe for concurrent use — call
// only when no producer or consumer is active.
func (r *Ring) Reset() {
	atomic.StoreUint64(&r.head, 0)
	atomic.StoreUint64(&r.tail, 0)
}
