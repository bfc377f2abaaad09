// ════════════════════════════════════════════════════════════════════════════════════════════════
// FIX-LIKE PARSER
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Decodes a simplified FIX message: SOH-delimited (\x01) tag=value pairs, e.g.
// "8=FIX.4.2\x0135=D\x0155=BTCUSD\x0144=50000.25\x0138=1.5\x0134=42\x0110=128\x01". Frame
// boundary is the tag 10 (checksum) field — its trailing SOH marks the end of the message.

package parser

import (
	"bytes"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/histogram"
	"github.com/nanofeed/marketfeed/platform"
)

const fixSOH = 0x01

// FIXParser decodes the simplified tag=value FIX dialect described above.
type FIXParser struct {
	venueID uint32
	hist    *histogram.Histogram
}

func (p *FIXParser) Name() string { return "FIX" }

// Parse implements Parser.
func (p *FIXParser) Parse(data []byte, ev *event.Event) (consumed int, ok bool) {
	if len(data) < 20 {
		return 0, false
	}
	scopedRecord(p.hist, func() {
		consumed, ok = p.parse(data, ev)
	})
	return consumed, ok
}

func (p *FIXParser) parse(data []byte, ev *event.Event) (int, bool) {
	i := 0
	for i < len(data) {
		soh := bytes.IndexByte(data[i:], fixSOH)
		if soh < 0 {
			return 0, false // no terminator yet — incomplete
		}
		tag, val := splitFixField(data[i : i+soh])
		switch {
		case bytes.Equal(tag, []byte("35")):
			ev.EventType = fixMsgType(val)
		case bytes.Equal(tag, []byte("55")):
			ev.Symbol = event.NewSymbol(string(val))
		case bytes.Equal(tag, []byte("44")):
			ev.Price = parseFixFixedPoint(val)
		case bytes.Equal(tag, []byte("38")):
			ev.Quantity = parseFixFixedPoint(val)
		case bytes.Equal(tag, []byte("34")):
			ev.SequenceNumber = uint64(parseDecimalInt64(val))
		case bytes.Equal(tag, []byte("10")):
			ev.VenueID = p.venueID
			ev.ReceiveTimestamp = platform.CyclesNow()
			return i + soh + 1, true
		}
		i += soh + 1
	}
	return 0, false
}

// splitFixField splits a SOH-delimited "tag=value" field on its first '='.
func splitFixField(field []byte) (tag, val []byte) {
	eq := bytes.IndexByte(field, '=')
	if eq < 0 {
		return field, nil
	}
	return field[:eq], field[eq+1:]
}

func fixMsgType(val []byte) event.EventType {
	if len(val) == 0 {
		return event.EventUnknown
	}
	switch val[0] {
	case 'D':
		return event.EventTrade
	case 'W':
		return event.EventBookUpdate
	case '0':
		return event.EventHeartbeat
	default:
		return event.EventUnknown
	}
}

// parseDecimalInt64 parses a signed decimal ASCII integer, stopping at the first non-digit
// rather than rejecting the whole field — matching the tolerant style of this family's other
// ASCII scanners.
func parseDecimalInt64(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	neg := false
	i := 0
	if b[0] == '-' {
		neg = true
		i = 1
	}
	var v int64
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		v = v*10 + int64(b[i]-'0')
	}
	if neg {
		return -v
	}
	return v
}

// parseFixFixedPoint converts a decimal ASCII price/quantity string into the event package's
// fixed-point representation (scale 1e8).
func parseFixFixedPoint(b []byte) int64 {
	dot := bytes.IndexByte(b, '.')
	if dot < 0 {
		return parseDecimalInt64(b) * event.PriceScale
	}

	whole := parseDecimalInt64(b[:dot])
	fracBytes := b[dot+1:]
	frac := parseDecimalInt64(fracBytes)
	for n := len(fracBytes); n < 8; n++ {
		frac *= 10
	}
	if whole < 0 {
		return whole*event.PriceScale - frac
	}
	return whole*event.PriceScale + frac
}
