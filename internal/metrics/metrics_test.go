package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConnectedClientsGauge(t *testing.T) {
	before := testutil.ToFloat64(ConnectedClients)

	ConnectedClients.Inc()
	ConnectedClients.Inc()
	assert.Equal(t, before+2, testutil.ToFloat64(ConnectedClients))

	ConnectedClients.Dec()
	ConnectedClients.Dec()
	assert.Equal(t, before, testutil.ToFloat64(ConnectedClients))
}

func TestLabeledCounters(t *testing.T) {
	rejected := ConnectionsRejectedTotal.WithLabelValues("rate_limit")
	before := testutil.ToFloat64(rejected)
	rejected.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(rejected))

	deliveries := DeliveriesTotal.WithLabelValues("ok")
	before = testutil.ToFloat64(deliveries)
	deliveries.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(deliveries))

	broadcasts := BroadcastsTotal.WithLabelValues("event:created", "all")
	before = testutil.ToFloat64(broadcasts)
	broadcasts.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(broadcasts))
}
