// ════════════════════════════════════════════════════════════════════════════════════════════════
// SECONDARY FAN-IN — MPMC QUEUE CONSUMERS
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"context"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/lifecycle"
	"github.com/nanofeed/marketfeed/metrics"
	"github.com/nanofeed/marketfeed/mpmcqueue"
	"github.com/nanofeed/marketfeed/platform"
	"github.com/nanofeed/marketfeed/threadutil"
)

// runQueueConsumer drains queue until ctx is cancelled and, past that point, until the queue
// has been observed empty once the shared lifecycle state is stopped — so no event enqueued
// before shutdown is silently dropped.
func runQueueConsumer(ctx context.Context, queue *mpmcqueue.Queue, state *lifecycle.State, bundle *metrics.Bundle) {
	var ev event.Event
	lastSeqByVenue := make(map[uint32]uint64)
	miss := 0

	for {
		if queue.Dequeue(&ev) {
			now := platform.CyclesNow()
			bundle.QueueLatency.Record(platform.CyclesToNS(now - ev.ReceiveTimestamp))

			if last, ok := lastSeqByVenue[ev.VenueID]; ok && ev.SequenceNumber != last+1 {
				bundle.RecordSequenceGap()
			}
			lastSeqByVenue[ev.VenueID] = ev.SequenceNumber

			bundle.RecordMessageProcessed()
			miss = 0
			continue
		}

		select {
		case <-ctx.Done():
			if state.Stopped() && queue.Empty() {
				return
			}
		default:
		}

		if miss++; miss >= 256 {
			miss = 0
			threadutil.Yield()
		} else {
			threadutil.SpinWait(1)
		}
	}
}
