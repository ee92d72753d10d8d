package datasync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vekimeteo_sync_connection_attempts_total",
		Help: "Connection attempts to the data source",
	}, []string{"backend"})
	syncEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vekimeteo_sync_events_total",
		Help: "Sync events handled by the data channel",
	}, []string{"kind"})
	decodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vekimeteo_sync_decode_failures_total",
		Help: "Weather payloads that could not be decoded",
	})
)
