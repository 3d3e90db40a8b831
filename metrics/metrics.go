package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	SnapshotRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_snapshot_refresh_total",
		Help: "Full snapshot refresh cycles by trigger",
	}, []string{"trigger"})

	RealtimeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "khata_realtime_events_total",
		Help: "Realtime change notifications by event type",
	}, []string{"type"})

	RealtimeReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "khata_realtime_reconnects_total",
		Help: "Realtime websocket reconnect attempts",
	})
)
