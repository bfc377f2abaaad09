// ════════════════════════════════════════════════════════════════════════════════════════════════
// PRIMARY VENUE — PINNED PRODUCER/CONSUMER OVER THE SPSC RING
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// One core-pinned goroutine generates a synthetic trade stream, one core-pinned goroutine
// drains it, exactly the single-producer/single-consumer shape spscring.Ring is built for.
// Every other simulated venue in this driver goes through the MPMC queue instead — this is the
// one path dedicated to demonstrating the ring at its intended one-to-one cardinality.

package main

import (
	"context"
	"time"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/lifecycle"
	"github.com/nanofeed/marketfeed/metrics"
	"github.com/nanofeed/marketfeed/platform"
	"github.com/nanofeed/marketfeed/pool"
	"github.com/nanofeed/marketfeed/spscring"
	"github.com/nanofeed/marketfeed/threadutil"
)

var primarySymbol = event.NewSymbol("AAPL")

// runPrimaryProducer pins the calling goroutine to cpuID and pushes a synthetic trade stream
// into ring until ctx is cancelled, or until state reports Stopped while it waits on a full
// ring. evPool stages each event's fields
// before the ring's copy-by-value Push, demonstrating the object pool feeding the ring along
// the intended path: parser or producer -> pool.Get -> ring.Push -> pool.Put.
func runPrimaryProducer(ctx context.Context, cpuID int, ring *spscring.Ring, evPool *pool.Pool, state *lifecycle.State, bundle *metrics.Bundle) {
	threadutil.Pin(cpuID)
	defer threadutil.Yield()

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		slot, idx, ok := evPool.Get()
		if !ok {
			bundle.RecordQueueFull()
			threadutil.SpinWait(64)
			continue
		}

		seq++
		slot.ExchangeTimestamp = uint64(time.Now().UnixNano())
		slot.ReceiveTimestamp = platform.CyclesNow()
		slot.Symbol = primarySymbol
		slot.SequenceNumber = seq
		slot.Price = event.FixedPoint(150, 0)
		slot.Quantity = event.FixedPoint(100, 0)
		slot.VenueID = primaryVenueID
		slot.EventType = event.EventTrade
		slot.Side = event.SideBid

		for !ring.Push(slot) {
			if state.Stopped() {
				evPool.Put(idx)
				return
			}
			bundle.RecordQueueFull()
			threadutil.SpinWait(1)
		}
		evPool.Put(idx)
		bundle.RecordMessageReceived()
		state.SignalActivity()

		if seq%1000 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
}

// primaryConsumerHandler returns the per-event callback threadutil.PinnedConsumer invokes for
// every event drained off the primary ring: records end-to-end latency and detects sequence
// gaps in the single-producer stream.
func primaryConsumerHandler(bundle *metrics.Bundle) func(*event.Event) {
	var lastSeq uint64
	var seen bool
	return func(ev *event.Event) {
		now := platform.CyclesNow()
		bundle.EndToEndLatency.Record(platform.CyclesToNS(now - ev.ReceiveTimestamp))

		if seen && ev.SequenceNumber != lastSeq+1 {
			bundle.RecordSequenceGap()
		}
		lastSeq = ev.SequenceNumber
		seen = true

		bundle.RecordMessageProcessed()
	}
}
