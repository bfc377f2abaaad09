// ════════════════════════════════════════════════════════════════════════════════════════════════
// JSON PARSER
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Decodes newline-delimited JSON tick frames using sonnet, a drop-in encoding/json replacement.
// Each line is one tick object: {"seq":1,"symbol":"BTCUSD","price":50000.25,"qty":1.5,"side":
// "buy","type":"trade"}.

package parser

import (
	"bytes"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/histogram"
	"github.com/nanofeed/marketfeed/platform"
	"github.com/sugawarayuuta/sonnet"
)

// jsonTick is the wire shape of one JSON tick frame.
type jsonTick struct {
	Sequence uint64  `json:"seq"`
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"qty"`
	Side     string  `json:"side"`
	Type     string  `json:"type"`
}

// JSONParser decodes the newline-delimited JSON dialect described above.
type JSONParser struct {
	venueID uint32
	hist    *histogram.Histogram
}

func (p *JSONParser) Name() string { return "JSON" }

// Parse implements Parser.
func (p *JSONParser) Parse(data []byte, ev *event.Event) (consumed int, ok bool) {
	scopedRecord(p.hist, func() {
		consumed, ok = p.parse(data, ev)
	})
	return consumed, ok
}

func (p *JSONParser) parse(data []byte, ev *event.Event) (int, bool) {
	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return 0, false // incomplete — the line isn't fully buffered yet
	}

	var tick jsonTick
	if err := sonnet.Unmarshal(data[:nl], &tick); err != nil {
		return nl + 1, false // framed but malformed JSON
	}

	ev.SequenceNumber = tick.Sequence
	ev.Symbol = event.NewSymbol(tick.Symbol)
	ev.Price = int64(tick.Price * event.PriceScale)
	ev.Quantity = int64(tick.Quantity * event.PriceScale)
	ev.Side = jsonSide(tick.Side)
	ev.EventType = jsonEventType(tick.Type)
	ev.VenueID = p.venueID
	ev.ReceiveTimestamp = platform.CyclesNow()

	return nl + 1, true
}

func jsonSide(s string) event.Side {
	switch s {
	case "buy", "bid":
		return event.SideBid
	case "sell", "ask":
		return event.SideAsk
	case "both":
		return event.SideBoth
	default:
		return event.SideUnknown
	}
}

func jsonEventType(s string) event.EventType {
	switch s {
	case "trade":
		return event.EventTrade
	case "quote":
		return event.EventQuote
	case "book_update":
		return event.EventBookUpdate
	case "heartbeat":
		return event.EventHeartbeat
	case "gap":
		return event.EventGap
	case "connection_status":
		return event.EventConnectionStatus
	default:
		return event.EventUnknown
	}
}
