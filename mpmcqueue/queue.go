// ============================================================================
// LOCK-FREE MPMC EVENT QUEUE — MICHAEL-SCOTT OVER A BOUNDED NODE ARENA
// ============================================================================
//
// Multi-producer/multi-consumer queue for fanning normalized events out to
// N downstream consumers (strategy/recorder/metrics goroutines). The
// algorithm is Michael-Scott: a singly-linked list with a dummy head node,
// CAS-swung head/tail, and a tail-helping step when a slow producer leaves
// tail one node behind the true end of the list.
//
// Node storage is a fixed arena sized at construction — there is no dynamic
// allocation on the enqueue/dequeue path, so a queue that has reached
// capacity returns false from Enqueue rather than growing.
//
// ABA safety:
//   Go has no tagged-pointer CAS, so every queue-internal reference (head,
//   tail, a node's next, and the free-list head) is a (generation, index)
//   pair packed into one uint64 and CAS'd as a unit — the same technique
//   pool.Pool uses for its free list, applied here to head/tail/next too
//   since Michael-Scott's ABA hazard is not confined to the free list.

package mpmcqueue

import (
	"runtime"
	"sync/atomic"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/platform"
)

const nilHandle = ^uint64(0)

func tag(index uint32, generation uint32) uint64 {
	return uint64(generation)<<32 | uint64(index)
}

func untag(t uint64) (index uint32, generation uint32) {
	return uint32(t), uint32(t >> 32)
}

type mnode struct {
	data event.Event
	next uint64
}

// Queue is a bounded Michael-Scott MPMC queue of event.Event values.
type Queue struct {
	head uint64
	_    [56]byte
	tail uint64
	_    [56]byte
	free uint64
	_    [56]byte

	nodes []mnode
	gen   uint32
}

// New builds a queue with room for maxNodes in-flight entries (one of which
// backs the permanent dummy head).
func New(maxNodes int) *Queue {
	if maxNodes <= 1 {
		panic("mpmcqueue: maxNodes must be > 1")
	}

	q := &Queue{
		nodes: make([]mnode, maxNodes),
	}

	for i := range q.nodes {
		q.nodes[i].next = nilHandle
	}

	// index 0 is the permanent dummy node; the rest seed the free list.
	free := nilHandle
	for i := len(q.nodes) - 1; i >= 1; i-- {
		q.nodes[i].next = free
		free = tag(uint32(i), 0)
	}
	q.free = free

	dummy := tag(0, 0)
	q.head = dummy
	q.tail = dummy
	return q
}

//go:nosplit
func (q *Queue) allocNode() (uint64, bool) {
	var backoff exponentialBackoff
	for {
		h := atomic.LoadUint64(&q.free)
		if h == nilHandle {
			return 0, false
		}
		idx, _ := untag(h)
		next := atomic.LoadUint64(&q.nodes[idx].next)
		if atomic.CompareAndSwapUint64(&q.free, h, next) {
			return h, true
		}
		backoff.backoff()
	}
}

//go:nosplit
func (q *Queue) reclaimNode(h uint64) {
	idx, _ := untag(h)
	g := atomic.AddUint32(&q.gen, 1)
	tagged := tag(idx, g)
	var backoff exponentialBackoff
	for {
		old := atomic.LoadUint64(&q.free)
		atomic.StoreUint64(&q.nodes[idx].next, old)
		if atomic.CompareAndSwapUint64(&q.free, old, tagged) {
			return
		}
		backoff.backoff()
	}
}

// Enqueue appends item to the tail of the queue. Returns false when the
// node arena is exhausted.
func (q *Queue) Enqueue(item *event.Event) bool {
	h, ok := q.allocNode()
	if !ok {
		return false
	}
	idx, _ := untag(h)
	q.nodes[idx].data = *item
	atomic.StoreUint64(&q.nodes[idx].next, nilHandle)

	var backoff exponentialBackoff
	for {
		tailH := atomic.LoadUint64(&q.tail)
		tailIdx, _ := untag(tailH)
		nextH := atomic.LoadUint64(&q.nodes[tailIdx].next)

		if tailH == atomic.LoadUint64(&q.tail) {
			if nextH == nilHandle {
				if atomic.CompareAndSwapUint64(&q.nodes[tailIdx].next, nilHandle, h) {
					atomic.CompareAndSwapUint64(&q.tail, tailH, h)
					return true
				}
			} else {
				atomic.CompareAndSwapUint64(&q.tail, tailH, nextH)
			}
		}
		backoff.backoff()
	}
}

// Dequeue removes the item at the head of the queue into out. Returns false
// if the queue is empty.
func (q *Queue) Dequeue(out *event.Event) bool {
	var backoff exponentialBackoff
	for {
		headH := atomic.LoadUint64(&q.head)
		tailH := atomic.LoadUint64(&q.tail)
		headIdx, _ := untag(headH)
		nextH := atomic.LoadUint64(&q.nodes[headIdx].next)

		if headH == atomic.LoadUint64(&q.head) {
			tailIdx, _ := untag(tailH)
			if headIdx == tailIdx {
				if nextH == nilHandle {
					return false
				}
				atomic.CompareAndSwapUint64(&q.tail, tailH, nextH)
			} else {
				if nextH == nilHandle {
					backoff.backoff()
					continue
				}
				nextIdx, _ := untag(nextH)
				*out = q.nodes[nextIdx].data
				if atomic.CompareAndSwapUint64(&q.head, headH, nextH) {
					q.reclaimNode(headH)
					return true
				}
			}
		}
		backoff.backoff()
	}
}

// DequeueBulk drains up to len(out) items, returning the count actually
// dequeued. Each item is taken by a separate Dequeue call, so the per-item
// CAS cost is unchanged and no ordering is guaranteed across items beyond
// what single dequeues give.
func (q *Queue) DequeueBulk(out []event.Event) int {
	n := 0
	for n < len(out) && q.Dequeue(&out[n]) {
		n++
	}
	return n
}

// Empty reports whether the queue currently has no items (approximate
// under concurrent use).
func (q *Queue) Empty() bool {
	headIdx, _ := untag(atomic.LoadUint64(&q.head))
	return atomic.LoadUint64(&q.nodes[headIdx].next) == nilHandle
}

// Size walks the list to report an approximate occupancy count — expensive,
// monitoring use only.
func (q *Queue) Size() int {
	count := 0
	cur, _ := untag(atomic.LoadUint64(&q.head))
	next := atomic.LoadUint64(&q.nodes[cur].next)
	for next != nilHandle && count < len(q.nodes) {
		count++
		cur, _ = untag(next)
		next = atomic.LoadUint64(&q.nodes[cur].next)
	}
	return count
}

// exponentialBackoff runs a short sequence of CPU-relax spins followed by a
// scheduler yield once contention persists past maxBackoff doublings.
type exponentialBackoff struct {
	count int
}

const maxBackoff = 10

func (b *exponentialBackoff) backoff() {
	if b.count < maxBackoff {
		spins := 1 << b.count
		for i := 0; i < spins; i++ {
			platform.Pause()
		}
		b.count++
		return
	}
	runtime.Gosched()
}
