package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollectorRegisters(t *testing.T) {
	bundle := New()
	collector := NewPrometheusCollector(bundle)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(collector))

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, metricFamilies)
}

func TestPrometheusCollectorReportsReceivedCount(t *testing.T) {
	bundle := New()
	bundle.RecordMessageReceived()
	bundle.RecordMessageReceived()
	bundle.RecordMessageReceived()

	collector := NewPrometheusCollector(bundle)
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(collector))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, fam := range families {
		if fam.GetName() != "marketfeed_messages_received_total" {
			continue
		}
		found = true
		m := fam.GetMetric()[0]
		assert.Equal(t, float64(3), m.GetCounter().GetValue())
	}
	assert.True(t, found, "expected marketfeed_messages_received_total in gathered families")
}
