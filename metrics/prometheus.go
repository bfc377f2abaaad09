// ============================================================================
// PROMETHEUS COLLECTOR ADAPTER
// ============================================================================
//
// Wraps a Bundle as a prometheus.Collector so the driver can register it
// with a prometheus registry and serve /metrics. Apart from the driver in
// cmd/feedhandler, this adapter is the only place in the module that imports
// client_golang — the core Bundle above stays a plain-atomics struct with no
// awareness of any exporter.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// PrometheusCollector adapts a Bundle's counters and histogram percentiles
// into prometheus.Metric values on each scrape.
type PrometheusCollector struct {
	bundle *Bundle

	messagesReceived  *prometheus.Desc
	messagesProcessed *prometheus.Desc
	messagesDropped   *prometheus.Desc
	parseErrors       *prometheus.Desc
	sequenceGaps      *prometheus.Desc
	queueFullEvents   *prometheus.Desc

	endToEndP50  *prometheus.Desc
	endToEndP99  *prometheus.Desc
	parseP99     *prometheus.Desc
	queueP99     *prometheus.Desc
}

// NewPrometheusCollector builds a collector over bundle, namespacing every
// metric under "marketfeed".
func NewPrometheusCollector(bundle *Bundle) *PrometheusCollector {
	ns := "marketfeed"
	return &PrometheusCollector{
		bundle:            bundle,
		messagesReceived:  prometheus.NewDesc(ns+"_messages_received_total", "Total events received", nil, nil),
		messagesProcessed: prometheus.NewDesc(ns+"_messages_processed_total", "Total events processed", nil, nil),
		messagesDropped:   prometheus.NewDesc(ns+"_messages_dropped_total", "Total events dropped", nil, nil),
		parseErrors:       prometheus.NewDesc(ns+"_parse_errors_total", "Total parse errors", nil, nil),
		sequenceGaps:      prometheus.NewDesc(ns+"_sequence_gaps_total", "Total sequence gaps observed", nil, nil),
		queueFullEvents:   prometheus.NewDesc(ns+"_queue_full_total", "Total queue-full rejections", nil, nil),
		endToEndP50:       prometheus.NewDesc(ns+"_end_to_end_latency_p50_ns", "End-to-end latency p50, nanoseconds", nil, nil),
		endToEndP99:       prometheus.NewDesc(ns+"_end_to_end_latency_p99_ns", "End-to-end latency p99, nanoseconds", nil, nil),
		parseP99:          prometheus.NewDesc(ns+"_parse_latency_p99_ns", "Parse latency p99, nanoseconds", nil, nil),
		queueP99:          prometheus.NewDesc(ns+"_queue_latency_p99_ns", "Queue latency p99, nanoseconds", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.messagesReceived
	ch <- c.messagesProcessed
	ch <- c.messagesDropped
	ch <- c.parseErrors
	ch <- c.sequenceGaps
	ch <- c.queueFullEvents
	ch <- c.endToEndP50
	ch <- c.endToEndP99
	ch <- c.parseP99
	ch <- c.queueP99
}

// Collect implements prometheus.Collector.
func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.bundle.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.messagesReceived, prometheus.CounterValue, float64(snap.MessagesReceived))
	ch <- prometheus.MustNewConstMetric(c.messagesProcessed, prometheus.CounterValue, float64(snap.MessagesProcessed))
	ch <- prometheus.MustNewConstMetric(c.messagesDropped, prometheus.CounterValue, float64(snap.MessagesDropped))
	ch <- prometheus.MustNewConstMetric(c.parseErrors, prometheus.CounterValue, float64(snap.ParseErrors))
	ch <- prometheus.MustNewConstMetric(c.sequenceGaps, prometheus.CounterValue, float64(snap.SequenceGaps))
	ch <- prometheus.MustNewConstMetric(c.queueFullEvents, prometheus.CounterValue, float64(snap.QueueFullEvents))

	ch <- prometheus.MustNewConstMetric(c.endToEndP50, prometheus.GaugeValue, float64(c.bundle.EndToEndLatency.P50()))
	ch <- prometheus.MustNewConstMetric(c.endToEndP99, prometheus.GaugeValue, float64(c.bundle.EndToEndLatency.P99()))
	ch <- prometheus.MustNewConstMetric(c.parseP99, prometheus.GaugeValue, float64(c.bundle.ParseLatency.P99()))
	ch <- prometheus.MustNewConstMetric(c.queueP99, prometheus.GaugeValue, float64(c.bundle.QueueLatency.P99()))
}
