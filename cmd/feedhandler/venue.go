// ════════════════════════════════════════════════════════════════════════════════════════════════
// SIMULATED SECONDARY VENUES
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Each simulated venue is assigned one of the FIX, binary, and JSON demonstration parsers,
// round-robin by venue index, and for every tick encodes a synthetic tick into that dialect's
// wire bytes and decodes it straight back through the real parser.Parser implementation before
// handing the normalized event.Event to the MPMC queue. This is the fan-in producer side the queue's Michael-Scott algorithm exists
// for — many goroutines, bounded node arena, no per-producer pinned core.

package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/metrics"
	"github.com/nanofeed/marketfeed/mpmcqueue"
	"github.com/nanofeed/marketfeed/parser"
	"github.com/nanofeed/marketfeed/registry"
	"go.uber.org/zap"
)

// secondaryVenueID offsets simulated secondary venues past the single pinned primary venue.
func secondaryVenueID(index int) uint32 { return primaryVenueID + 1 + uint32(index) }

// buildVenueRegistry registers metadata for the primary venue plus numVenues simulated
// secondary venues; logVenueRegistry reads it back once at startup to log each venue's name.
func buildVenueRegistry(numVenues int) *registry.Registry {
	reg := registry.New(numVenues + 1)
	reg.Put(event.NewSymbol("AAPL"), registry.VenueMetadata{VenueID: primaryVenueID, Name: "primary", Region: "us-east", Tier: 0})
	for i := 0; i < numVenues; i++ {
		sym := syntheticSymbol(i)
		reg.Put(sym, registry.VenueMetadata{
			VenueID: secondaryVenueID(i),
			Name:    fmt.Sprintf("venue-%d", i),
			Region:  regionFor(i),
			Tier:    uint8(1 + i%3),
		})
	}
	return reg
}

func syntheticSymbol(index int) event.Symbol {
	tickers := []string{"BTCUSD", "ETHUSD", "EURUSD", "GBPUSD", "XAUUSD", "SOLUSD", "MSFT", "TSLA"}
	return event.NewSymbol(tickers[index%len(tickers)])
}

func regionFor(index int) string {
	regions := []string{"us-east", "us-west", "eu-central", "ap-southeast"}
	return regions[index%len(regions)]
}

// logVenueRegistry logs the metadata registered for the primary venue and each simulated
// secondary venue once at startup, looking each one back up by symbol rather than trusting the
// loop that built reg — a cheap sanity check that Put/Get agree before the run starts.
func logVenueRegistry(logger *zap.SugaredLogger, reg *registry.Registry, numVenues int) {
	if meta, ok := reg.Get(event.NewSymbol("AAPL")); ok {
		logger.Infow("venue registered", "venue_id", meta.VenueID, "name", meta.Name, "region", meta.Region, "tier", meta.Tier)
	}
	for i := 0; i < numVenues; i++ {
		meta, ok := reg.Get(syntheticSymbol(i))
		if !ok {
			continue
		}
		logger.Infow("venue registered", "venue_id", meta.VenueID, "name", meta.Name, "region", meta.Region, "tier", meta.Tier)
	}
}

// runVenueSimulator drives one simulated venue until ctx is cancelled, encoding and decoding
// one synthetic tick per iteration before enqueuing the result onto queue.
func runVenueSimulator(ctx context.Context, venueID uint32, sym event.Symbol, typ parser.Type, queue *mpmcqueue.Queue, bundle *metrics.Bundle) {
	p := parser.New(typ, venueID, bundle.ParseLatency)

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		seq++
		frame := encodeSyntheticTick(typ, seq, sym)

		var ev event.Event
		if _, ok := p.Parse(frame, &ev); !ok {
			bundle.RecordParseError()
			continue
		}

		if !queue.Enqueue(&ev) {
			bundle.RecordQueueFull()
			time.Sleep(time.Microsecond)
			continue
		}
		bundle.RecordMessageReceived()

		if seq%500 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// encodeSyntheticTick renders one synthetic tick as wire bytes in the dialect typ expects, so
// the round-trip below exercises the real parser.Parser decode path rather than constructing
// an event.Event directly.
func encodeSyntheticTick(typ parser.Type, seq uint64, sym event.Symbol) []byte {
	price := event.FixedPoint(100+int64(seq%50), 25000000)
	qty := event.FixedPoint(1+int64(seq%10), 0)

	switch typ {
	case parser.TypeFIX:
		return []byte(fmt.Sprintf("8=FIX.4.2\x0135=D\x0155=%s\x0144=%d.%08d\x0138=%d.%08d\x0134=%d\x0110=%d\x01",
			sym.String(), price/event.PriceScale, price%event.PriceScale, qty/event.PriceScale, qty%event.PriceScale, seq, seq%256))
	case parser.TypeBinary:
		return encodeSyntheticBinaryTick(seq, sym, price, qty)
	default: // parser.TypeJSON
		return []byte(fmt.Sprintf(`{"seq":%d,"symbol":%q,"price":%d.%08d,"qty":%d.%08d,"side":"buy","type":"trade"}`+"\n",
			seq, sym.String(), price/event.PriceScale, price%event.PriceScale, qty/event.PriceScale, qty%event.PriceScale))
	}
}

const syntheticBinaryMessageSize = 36

func encodeSyntheticBinaryTick(seq uint64, sym event.Symbol, price, qty int64) []byte {
	frame := make([]byte, syntheticBinaryMessageSize)
	binary.LittleEndian.PutUint16(frame[0:2], uint16(syntheticBinaryMessageSize))
	frame[2] = byte(event.EventTrade)
	binary.LittleEndian.PutUint64(frame[4:12], seq)
	copy(frame[12:20], sym[:])
	binary.LittleEndian.PutUint64(frame[20:28], uint64(price))
	binary.LittleEndian.PutUint64(frame[28:36], uint64(qty))
	return frame
}
