// ════════════════════════════════════════════════════════════════════════════════════════════════
// Lock-Free Fixed-Slot Object Pool
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Market Data Feed Handler Core
// Component: Event Arena + Treiber Free List
//
// Description:
//   Pre-reserves capacity slots of event.Event storage in one contiguous arena and hands out
//   slots by index through a lock-free free list. No slot is ever freed back to the Go
//   allocator for the lifetime of the pool — steady-state Get/Put touches zero heap.
//
// ABA protection:
//   Free-list links are packed (generation:32, index:32) inside a single uint64 so a CAS can
//   never be fooled by a slot that was popped and pushed back between a reader's load and its
//   compare-exchange — the generation counter increments on every push, per Open Question #1.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package pool

import (
	"sync/atomic"

	"github.com/nanofeed/marketfeed/event"
)

const nilTagged = ^uint64(0)

// tag packs a free-list node's slot index and a generation counter into one CAS-able word.
func tag(index uint32, generation uint32) uint64 {
	return uint64(generation)<<32 | uint64(index)
}

func untag(t uint64) (index uint32, generation uint32) {
	return uint32(t), uint32(t >> 32)
}

// node is the free-list linkage stored alongside (not inside) each arena slot, so a live
// event.Event's bytes are never aliased by free-list bookkeeping.
type node struct {
	next uint64 // tagged (generation, index) of the next free slot, or nilTagged
}

// Pool is a lock-free fixed-capacity allocator of event.Event values. The zero Pool is not
// usable; construct with New.
type Pool struct {
	arena []event.Event
	links []node
	head  uint64 // tagged (generation, index) of the free-list head, or nilTagged
	_     [7]uint64

	gen uint32 // monotonic generation source for pushes

	hugePages bool
	capacity  uint32
}

// New allocates a pool of the given capacity. useHugePages requests huge-page backed storage;
// on platforms or kernels where that fails, the pool silently falls back to a normal
// allocation.
func New(capacity int, useHugePages bool) *Pool {
	if capacity <= 0 {
		panic("pool: capacity must be positive")
	}
	p := &Pool{
		arena:    make([]event.Event, capacity),
		links:    make([]node, capacity),
		capacity: uint32(capacity),
	}
	if useHugePages {
		p.hugePages = lockMemory(p.arena)
	}
	for i := uint32(0); i < p.capacity; i++ {
		p.links[i].next = nilTagged
	}
	head := nilTagged
	for i := uint32(0); i < p.capacity; i++ {
		p.links[i].next = head
		head = tag(i, 0)
	}
	p.head = head
	return p
}

// Capacity returns the total number of slots reserved at construction.
func (p *Pool) Capacity() int { return int(p.capacity) }

// UsingHugePages reports whether the huge-page advice (madvise) and memory locking (mlock) on
// the backing arena both succeeded; the arena itself is an ordinary Go allocation.
func (p *Pool) UsingHugePages() bool { return p.hugePages }

// Get removes a slot from the free list and returns a pointer to its zeroed-on-return storage,
// plus the slot's index for later Put. ok is false when the pool is exhausted.
//
//go:nosplit
func (p *Pool) Get() (slot *event.Event, index uint32, ok bool) {
	for {
		h := atomic.LoadUint64(&p.head)
		if h == nilTagged {
			return nil, 0, false
		}
		idx, _ := untag(h)
		next := atomic.LoadUint64(&p.links[idx].next)
		if atomic.CompareAndSwapUint64(&p.head, h, next) {
			p.arena[idx] = event.Event{}
			return &p.arena[idx], idx, true
		}
	}
}

// Put returns a previously allocated slot to the free list. index must be a value returned by
// a prior Get on this pool — passing an unrelated index corrupts the free list.
//
//go:nosplit
func (p *Pool) Put(index uint32) {
	g := atomic.AddUint32(&p.gen, 1)
	newHead := tag(index, g)
	for {
		h := atomic.LoadUint64(&p.head)
		p.links[index].next = h
		if atomic.CompareAndSwapUint64(&p.head, h, newHead) {
			return
		}
	}
}

// Slot returns the arena element at index without any free-list bookkeeping. Callers that keep
// the index from Get (e.g. to pass through a queue by value) use this to reach the storage.
func (p *Pool) Slot(index uint32) *event.Event {
	return &p.arena[index]
}

// Available walks the free list and reports an approximate count of free slots — exact only
// under no concurrent Get/Put.
func (p *Pool) Available() int {
	count := 0
	h := atomic.LoadUint64(&p.head)
	for h != nilTagged && count < int(p.capacity) {
		idx, _ := untag(h)
		count++
		h = atomic.LoadUint64(&p.links[idx].next)
	}
	return count
}
