// ════════════════════════════════════════════════════════════════════════════════════════════════
// VENUE METADATA REGISTRY
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Market Data Feed Handler Core
// Component: Symbol → Venue Metadata Lookup
//
// Description:
//   Fixed-capacity Robin Hood hash table mapping an event.Symbol to the venue metadata the demo
//   driver uses to label a simulated producer (which exchange, which region, what tier of
//   service). Generalized from a direct-addressed uint32-keyed table to an 8-byte Symbol key:
//   since ticker bytes are not already uniformly distributed across the table's bit range, keys
//   are run through an avalanche mix before masking into a bucket, and the zero Symbol is
//   reserved as the empty-slot sentinel exactly as the zero uint32 was in the uint32 version.
//
// Design Principles:
//   - Fixed capacity, power-of-2 sized for fast masking
//   - Robin Hood displacement bounds worst-case probe distance
//   - Parallel key/value arrays keep scans cache-friendly
// ════════════════════════════════════════════════════════════════════════════════════════════════

package registry

import (
	"encoding/binary"

	"github.com/nanofeed/marketfeed/event"
)

// VenueMetadata describes a simulated market data venue for driver-side labeling and reporting.
type VenueMetadata struct {
	VenueID uint32
	Name    string
	Region  string
	Tier    uint8
}

// Registry is a fixed-capacity Symbol -> VenueMetadata table for single-threaded setup use —
// the driver populates it once at startup before spawning producer goroutines, then only reads.
type Registry struct {
	keys []event.Symbol
	vals []VenueMetadata
	mask uint64
	size int
}

// nextPow2 returns the smallest power of 2 greater than or equal to n.
func nextPow2(n int) uint64 {
	s := uint64(1)
	for s < uint64(n) {
		s <<= 1
	}
	return s
}

// mix64 avalanches a 64-bit key so that nearby ticker byte patterns land in different buckets.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

func hashSymbol(s event.Symbol) uint64 {
	return mix64(binary.LittleEndian.Uint64(s[:]))
}

func isZero(s event.Symbol) bool {
	return s == event.Symbol{}
}

// New creates a registry with room for at least capacity entries. Capacity is doubled and
// rounded up to the next power of 2 to keep the load factor under 50%, bounding probe
// distances as the table fills.
func New(capacity int) *Registry {
	sz := nextPow2(capacity * 2)
	return &Registry{
		keys: make([]event.Symbol, sz),
		vals: make([]VenueMetadata, sz),
		mask: sz - 1,
	}
}

// Put inserts metadata for sym, or returns the metadata already stored for sym unchanged.
// inserted reports whether this call created a new entry. Put panics if sym is the zero
// Symbol — it is reserved as the empty-slot sentinel and can never be a valid key.
func (r *Registry) Put(sym event.Symbol, meta VenueMetadata) (stored VenueMetadata, inserted bool) {
	if isZero(sym) {
		panic("registry: zero Symbol is reserved and cannot be registered")
	}

	key := sym
	val := meta
	i := hashSymbol(key) & r.mask
	dist := uint64(0)

	for {
		k := r.keys[i]

		if isZero(k) {
			r.keys[i], r.vals[i] = key, val
			r.size++
			return meta, true
		}

		if k == key {
			return r.vals[i], false
		}

		kDist := (i + r.mask + 1 - (hashSymbol(k) & r.mask)) & r.mask
		if kDist < dist {
			key, r.keys[i] = r.keys[i], key
			val, r.vals[i] = r.vals[i], val
			dist = kDist
		}

		i = (i + 1) & r.mask
		dist++
	}
}

// Get retrieves the metadata registered for sym, using Robin Hood early termination to bound
// the cost of a miss.
func (r *Registry) Get(sym event.Symbol) (VenueMetadata, bool) {
	i := hashSymbol(sym) & r.mask
	dist := uint64(0)

	for {
		k := r.keys[i]

		if isZero(k) {
			return VenueMetadata{}, false
		}

		if k == sym {
			return r.vals[i], true
		}

		kDist := (i + r.mask + 1 - (hashSymbol(k) & r.mask)) & r.mask
		if kDist < dist {
			return VenueMetadata{}, false
		}

		i = (i + 1) & r.mask
		dist++
	}
}

// Len returns the number of entries currently stored.
func (r *Registry) Len() int { return r.size }

// Capacity returns the number of buckets backing the table.
func (r *Registry) Capacity() int { return len(r.keys) }
