package srv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	redrawCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vekimeteo_redraws_total",
		Help: "Frames rendered and pushed to the display",
	})
	lifecycleEventCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vekimeteo_lifecycle_events_total",
		Help: "Lifecycle callbacks handled by the event loop",
	}, []string{"callback"})
)
