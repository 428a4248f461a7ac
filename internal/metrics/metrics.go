package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Connection metrics
var (
	// ConnectedClients tracks the number of currently open event streams
	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "realtime_connected_clients",
			Help: "Number of currently open event stream connections",
		},
	)

	// ConnectionsOpenedTotal tracks accepted event stream connections
	ConnectionsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "realtime_connections_opened_total",
			Help: "Total accepted event stream connections",
		},
	)

	// ConnectionsRejectedTotal tracks rejected connection attempts by reason
	ConnectionsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_connections_rejected_total",
			Help: "Total rejected connection attempts by limit reason",
		},
		[]string{"reason"},
	)

	// HeartbeatFailuresTotal tracks heartbeat writes that detected a dead connection
	HeartbeatFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "realtime_heartbeat_failures_total",
			Help: "Total heartbeat write failures (dead connections detected)",
		},
	)
)

// Broadcast metrics
var (
	// BroadcastsTotal tracks broadcast calls by event type and scope (all/user)
	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_broadcasts_total",
			Help: "Total broadcast calls by event type and delivery scope",
		},
		[]string{"event_type", "scope"},
	)

	// DeliveriesTotal tracks per-connection delivery attempts by status
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_deliveries_total",
			Help: "Total per-connection delivery attempts by status",
		},
		[]string{"status"},
	)

	// BroadcastDuration tracks full fan-out latency in seconds
	BroadcastDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "realtime_broadcast_duration_seconds",
			Help:    "Broadcast fan-out duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
)

// Database metrics
var (
	// DBQueryDuration tracks user store query latency in seconds
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)
)
