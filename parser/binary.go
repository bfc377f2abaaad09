// ════════════════════════════════════════════════════════════════════════════════════════════════
// BINARY PARSER
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Decodes a fixed-header binary tick frame: a 4-byte little-endian header (message length,
// message type, one reserved byte) followed by a 32-byte body (sequence number, symbol, price,
// quantity). The message type byte maps directly onto event.EventType's ordinal values.

package parser

import (
	"encoding/binary"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/histogram"
	"github.com/nanofeed/marketfeed/platform"
)

const (
	binaryHeaderSize  = 4
	binaryBodySize    = 32
	binaryMessageSize = binaryHeaderSize + binaryBodySize
)

// BinaryParser decodes the fixed-header binary dialect described above.
type BinaryParser struct {
	venueID uint32
	hist    *histogram.Histogram
}

func (p *BinaryParser) Name() string { return "Binary" }

// Parse implements Parser.
func (p *BinaryParser) Parse(data []byte, ev *event.Event) (consumed int, ok bool) {
	if len(data) < binaryHeaderSize {
		return 0, false
	}
	scopedRecord(p.hist, func() {
		consumed, ok = p.parse(data, ev)
	})
	return consumed, ok
}

func (p *BinaryParser) parse(data []byte, ev *event.Event) (int, bool) {
	length := int(binary.LittleEndian.Uint16(data[0:2]))
	msgType := data[2]

	if length < binaryMessageSize {
		return length, false // framed but malformed — too short for the fixed body
	}
	if len(data) < length {
		return 0, false // incomplete — wait for the rest of the frame
	}

	body := data[binaryHeaderSize:length]
	ev.SequenceNumber = binary.LittleEndian.Uint64(body[0:8])
	copy(ev.Symbol[:], body[8:16])
	ev.Price = int64(binary.LittleEndian.Uint64(body[16:24]))
	ev.Quantity = int64(binary.LittleEndian.Uint64(body[24:32]))
	ev.EventType = binaryEventType(msgType)
	ev.VenueID = p.venueID
	ev.ReceiveTimestamp = platform.CyclesNow()

	return length, true
}

func binaryEventType(msgType byte) event.EventType {
	if msgType > byte(event.EventConnectionStatus) {
		return event.EventUnknown
	}
	return event.EventType(msgType)
}
