// ════════════════════════════════════════════════════════════════════════════════════════════════
// Fixed-Point Normalized Event Record
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Market Data Feed Handler Core
// Component: Wire-Stable Event Contract
//
// Description:
//   The 64-byte, 64-byte-aligned value that moves through every queue in this module. Field
//   order and widths are a stable binary contract between parsers (producers) and the data
//   plane — reordering or resizing any field is a breaking change.
//
// Safety model:
//   Trivially copyable by value: a bitwise copy is equivalent to assignment. Never embed a
//   pointer, slice, or string field here — doing so would silently break the SPSC ring's and
//   MPMC queue's copy-by-value contract and the 64-byte size invariant.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package event

import "unsafe"

// EventType tags the semantic kind of a normalized event.
type EventType uint8

const (
	EventUnknown EventType = iota
	EventTrade
	EventQuote
	EventBookUpdate
	EventHeartbeat
	EventGap
	EventConnectionStatus
)

func (t EventType) String() string {
	switch t {
	case EventTrade:
		return "trade"
	case EventQuote:
		return "quote"
	case EventBookUpdate:
		return "book_update"
	case EventHeartbeat:
		return "heartbeat"
	case EventGap:
		return "gap"
	case EventConnectionStatus:
		return "connection_status"
	default:
		return "unknown"
	}
}

// Side tags which side of the book an event applies to.
type Side uint8

const (
	SideUnknown Side = iota
	SideBid
	SideAsk
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "bid"
	case SideAsk:
		return "ask"
	case SideBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Symbol is an opaque 8-byte venue symbol. Equality is 8-byte integer equality; Hash is
// identity on those 8 bytes — never run a cryptographic or avalanche mixer over
// a Symbol when comparing for the core's own purposes. Collaborators (e.g. registry) may fold
// it further for their own internal bucketing without changing the contract's semantics.
type Symbol [8]byte

// NewSymbol builds a Symbol from a short ASCII ticker, truncating or zero-padding to 8 bytes.
func NewSymbol(s string) Symbol {
	var sym Symbol
	copy(sym[:], s)
	return sym
}

func (s Symbol) String() string {
	n := 0
	for n < len(s) && s[n] != 0 {
		n++
	}
	return string(s[:n])
}

// PriceScale is the fixed-point scale for Price and Quantity: real_value * 1e8.
const PriceScale = 100_000_000

// FixedPoint multiplies a whole-number and fractional-hundred-millionths pair into the
// integer fixed-point representation used by Price/Quantity.
func FixedPoint(whole, fraction int64) int64 {
	return whole*PriceScale + fraction
}

// Event is the normalized, fixed-layout market data record. Its size is enforced at compile time
// by the array-length check below, and size and alignment are both checked by
// TestEventSizeAndAlignment — this struct must never gain, lose, or reorder a field without
// updating both.
//
//go:notinheap
//go:align 64
type Event struct {
	ExchangeTimestamp uint64    // 8B — venue-reported timestamp
	ReceiveTimestamp  uint64    // 8B — platform.CyclesNow() at ingest
	Symbol            Symbol    // 8B — opaque venue symbol, not zero-terminated
	SequenceNumber    uint64    // 8B — venue sequence number
	Price             int64     // 8B — fixed-point, scale 1e8
	Quantity          int64     // 8B — fixed-point, scale 1e8
	VenueID           uint32    // 4B
	OrderID           uint32    // 4B
	TradeID           uint32    // 4B
	EventType         EventType // 1B
	Side              Side      // 1B
	BookLevel         uint8     // 1B
	Flags             uint8     // 1B
}

const eventSize = 64

// These two declarations fail to compile if Event's size drifts from the wire contract. Go has
// no static_assert; this is the idiomatic substitute — a zero-length array whose size
// expression is negative (and therefore invalid) when the invariant is violated.
var _ [eventSize - sizeOfEventBytes]byte
var _ [sizeOfEventBytes - eventSize]byte

const sizeOfEventBytes = unsafe.Sizeof(Event{})

// ConnectionStatus describes a venue connectivity transition, the payload implied by
// EventConnectionStatus. It is carried out-of-band (never inlined into Event, to preserve the
// fixed 64-byte layout) — collaborators correlate it to an Event via VenueID + SequenceNumber.
type ConnectionStatus struct {
	VenueID       uint32
	Connected     bool
	Timestamp     uint64
	LastSequence  uint64
}
