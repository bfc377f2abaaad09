// ════════════════════════════════════════════════════════════════════════════════════════════════
// REPORTER — ONE-SECOND STATISTICS LOG
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Wakes once a second, reads the metrics bundle's counters and histogram percentiles, and logs
// a snapshot. Runs on an ordinary goroutine — never pinned, never on the hot path — which is
// exactly why it is the one place in this driver that reaches for zap instead of coldlog.

package main

import (
	"context"
	"time"

	"github.com/nanofeed/marketfeed/metrics"
	"go.uber.org/zap"
)

// runReporter logs a metrics snapshot every second until ctx is cancelled, plus one final
// snapshot on the way out.
func runReporter(ctx context.Context, logger *zap.SugaredLogger, bundle *metrics.Bundle) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logSnapshot(logger, bundle)
			return
		case <-ticker.C:
			logSnapshot(logger, bundle)
		}
	}
}

func logSnapshot(logger *zap.SugaredLogger, bundle *metrics.Bundle) {
	snap := bundle.Snapshot()
	logger.Infow("feed handler stats",
		"received", snap.MessagesReceived,
		"processed", snap.MessagesProcessed,
		"dropped", snap.MessagesDropped,
		"parse_errors", snap.ParseErrors,
		"sequence_gaps", snap.SequenceGaps,
		"queue_full", snap.QueueFullEvents,
		"in_flight", snap.InFlight,
		"e2e_p50_us", bundle.EndToEndLatency.P50()/1000,
		"e2e_p99_us", bundle.EndToEndLatency.P99()/1000,
		"e2e_max_us", bundle.EndToEndLatency.Max()/1000,
		"queue_p99_us", bundle.QueueLatency.P99()/1000,
		"parse_p99_us", bundle.ParseLatency.P99()/1000,
	)
}
