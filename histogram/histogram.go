// ============================================================================
// LOCK-FREE LOGARITHMIC LATENCY HISTOGRAM
// ============================================================================
//
// 32 atomic bucket counters over a logarithmic scale in microseconds, plus
// a running total/min/max/sum for O(1) mean and percentile queries that
// scan the buckets once. Every recording op is a handful of relaxed
// fetch-adds and two optimistic CAS loops (min/max) — no locks, no
// allocation, bounded steps.
//
// Bucket layout: bucket 0 covers [0,1) µs; bucket i>0 covers
// [2^(i-1), 2^i) µs, clamped at bucket 31.

package histogram

import (
	"math/bits"
	"sync/atomic"
)

const NumBuckets = 32

// Histogram is a lock-free latency histogram. Construct it with New (or call
// Reset before first use): every field starts at zero except min, which must
// hold the sentinel "no sample yet" value. In a zero-value Histogram min is
// 0, so Min() keeps reporting 0 whatever is recorded.
type Histogram struct {
	buckets [NumBuckets]uint64
	_       [64 - (NumBuckets*8)%64]byte

	total uint64
	_     [56]byte

	min uint64
	_   [56]byte

	max uint64
	_   [56]byte

	sum uint64
	_   [56]byte
}

// New returns a freshly reset histogram.
func New() *Histogram {
	h := &Histogram{}
	h.Reset()
	return h
}

// Record adds one latency sample, expressed in nanoseconds.
//
//go:nosplit
func (h *Histogram) Record(latencyNS uint64) {
	b := bucketFor(latencyNS)
	atomic.AddUint64(&h.buckets[b], 1)
	atomic.AddUint64(&h.total, 1)
	atomic.AddUint64(&h.sum, latencyNS)
	h.updateMin(latencyNS)
	h.updateMax(latencyNS)
}

//go:nosplit
func bucketFor(latencyNS uint64) int {
	if latencyNS < 1000 {
		return 0
	}
	us := latencyNS / 1000
	b := bits.Len64(us) // floor(log2(us)) + 1 for us >= 1
	if b > NumBuckets-1 {
		b = NumBuckets - 1
	}
	return b
}

//go:nosplit
func (h *Histogram) updateMin(value uint64) {
	for {
		cur := atomic.LoadUint64(&h.min)
		if value >= cur {
			return
		}
		if atomic.CompareAndSwapUint64(&h.min, cur, value) {
			return
		}
	}
}

//go:nosplit
func (h *Histogram) updateMax(value uint64) {
	for {
		cur := atomic.LoadUint64(&h.max)
		if value <= cur {
			return
		}
		if atomic.CompareAndSwapUint64(&h.max, cur, value) {
			return
		}
	}
}

// bucketUpperBoundNS returns the upper bound, in nanoseconds, of the given
// bucket index.
func bucketUpperBoundNS(bucket int) uint64 {
	if bucket == 0 {
		return 1000
	}
	return (uint64(1) << uint(bucket)) * 1000
}

// Percentile computes the p-th percentile latency in nanoseconds, for p in
// [0,1]. The result is quantized to the returned bucket's upper bound —
// the histogram's stated precision is the bucket width, not an
// interpolated estimate.
func (h *Histogram) Percentile(p float64) uint64 {
	total := atomic.LoadUint64(&h.total)
	if total == 0 {
		return 0
	}

	target := uint64(p*float64(total) + 0.999999999)
	if target == 0 {
		target = 1
	}

	var cumulative uint64
	for i := 0; i < NumBuckets; i++ {
		cumulative += atomic.LoadUint64(&h.buckets[i])
		if cumulative >= target {
			return bucketUpperBoundNS(i)
		}
	}
	return bucketUpperBoundNS(NumBuckets - 1)
}

func (h *Histogram) P50() uint64   { return h.Percentile(0.50) }
func (h *Histogram) P99() uint64   { return h.Percentile(0.99) }
func (h *Histogram) P999() uint64  { return h.Percentile(0.999) }
func (h *Histogram) P9999() uint64 { return h.Percentile(0.9999) }

func (h *Histogram) Min() uint64 { return atomic.LoadUint64(&h.min) }
func (h *Histogram) Max() uint64 { return atomic.LoadUint64(&h.max) }

// Mean returns sum/count, or zero if no samples have been recorded.
func (h *Histogram) Mean() uint64 {
	total := atomic.LoadUint64(&h.total)
	if total == 0 {
		return 0
	}
	return atomic.LoadUint64(&h.sum) / total
}

// StdDev approximates the standard deviation as range/4 — see DESIGN.md for why this
// stays an approximation rather than a true running-variance computation.
func (h *Histogram) StdDev() uint64 {
	mn := h.Min()
	mx := h.Max()
	if mx < mn {
		return 0
	}
	return (mx - mn) / 4
}

// Count returns the total number of recorded samples.
func (h *Histogram) Count() uint64 { return atomic.LoadUint64(&h.total) }

// Reset zeroes all counters and re-arms min/max sentinels. Not safe for
// concurrent use with Record — callers must quiesce producers first.
func (h *Histogram) Reset() {
	for i := range h.buckets {
		atomic.StoreUint64(&h.buckets[i], 0)
	}
	atomic.StoreUint64(&h.total, 0)
	atomic.StoreUint64(&h.min, ^uint64(0))
	atomic.StoreUint64(&h.max, 0)
	atomic.StoreUint64(&h.sum, 0)
}
