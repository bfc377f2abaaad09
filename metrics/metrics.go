// ============================================================================
// METRICS BUNDLE
// ============================================================================
//
// Atomic counters plus the three histograms the data plane records into
// (end-to-end, parse, queue latency). Each counter lives on its own cache
// line.

package metrics

import (
	"sync/atomic"

	"github.com/nanofeed/marketfeed/histogram"
)

// Bundle aggregates the data plane's counters and latency histograms.
type Bundle struct {
	messagesReceived uint64
	_                [56]byte

	messagesProcessed uint64
	_                 [56]byte

	messagesDropped uint64
	_               [56]byte

	parseErrors uint64
	_           [56]byte

	sequenceGaps uint64
	_            [56]byte

	queueFullEvents uint64
	_               [56]byte

	EndToEndLatency *histogram.Histogram
	ParseLatency    *histogram.Histogram
	QueueLatency    *histogram.Histogram
}

// New returns a fresh Bundle with all counters zeroed and histograms reset.
func New() *Bundle {
	return &Bundle{
		EndToEndLatency: histogram.New(),
		ParseLatency:    histogram.New(),
		QueueLatency:    histogram.New(),
	}
}

func (b *Bundle) RecordMessageReceived()  { atomic.AddUint64(&b.messagesReceived, 1) }
func (b *Bundle) RecordMessageProcessed() { atomic.AddUint64(&b.messagesProcessed, 1) }
func (b *Bundle) RecordMessageDropped()   { atomic.AddUint64(&b.messagesDropped, 1) }
func (b *Bundle) RecordParseError()       { atomic.AddUint64(&b.parseErrors, 1) }
func (b *Bundle) RecordSequenceGap()      { atomic.AddUint64(&b.sequenceGaps, 1) }
func (b *Bundle) RecordQueueFull()        { atomic.AddUint64(&b.queueFullEvents, 1) }

func (b *Bundle) MessagesReceived() uint64  { return atomic.LoadUint64(&b.messagesReceived) }
func (b *Bundle) MessagesProcessed() uint64 { return atomic.LoadUint64(&b.messagesProcessed) }
func (b *Bundle) MessagesDropped() uint64   { return atomic.LoadUint64(&b.messagesDropped) }
func (b *Bundle) ParseErrors() uint64       { return atomic.LoadUint64(&b.parseErrors) }
func (b *Bundle) SequenceGaps() uint64      { return atomic.LoadUint64(&b.sequenceGaps) }
func (b *Bundle) QueueFullEvents() uint64   { return atomic.LoadUint64(&b.queueFullEvents) }

// Snapshot is a point-in-time copy of the bundle's counters, suitable for a
// reporter goroutine to log or export without holding references into the
// live Bundle.
type Snapshot struct {
	MessagesReceived  uint64
	MessagesProcessed uint64
	MessagesDropped   uint64
	ParseErrors       uint64
	SequenceGaps      uint64
	QueueFullEvents   uint64
	InFlight          int64
}

// Snapshot captures the current counter values. InFlight is derived as
// received-processed-dropped.
func (b *Bundle) Snapshot() Snapshot {
	received := b.MessagesReceived()
	processed := b.MessagesProcessed()
	dropped := b.MessagesDropped()
	return Snapshot{
		MessagesReceived:  received,
		MessagesProcessed: processed,
		MessagesDropped:   dropped,
		ParseErrors:       b.ParseErrors(),
		SequenceGaps:      b.SequenceGaps(),
		QueueFullEvents:   b.QueueFullEvents(),
		InFlight:          int64(received) - int64(processed) - int64(dropped),
	}
}

// Reset zeroes every counter and histogram. Not safe for concurrent use —
// callers must quiesce producers/consumers first.
func (b *Bundle) Reset() {
	atomic.StoreUint64(&b.messagesReceived, 0)
	atomic.StoreUint64(&b.messagesProcessed, 0)
	atomic.StoreUint64(&b.messagesDropped, 0)
	atomic.StoreUint64(&b.parseErrors, 0)
	atomic.StoreUint64(&b.sequenceGaps, 0)
	atomic.StoreUint64(&b.queueFullEvents, 0)
	b.EndToEndLatency.Reset()
	b.ParseLatency.Reset()
	b.QueueLatency.Reset()
}
