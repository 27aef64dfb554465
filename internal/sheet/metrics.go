package sheet

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sheetsync",
		Subsystem: "sheet",
		Name:      "requests_total",
		Help:      "Sheet RPC calls by function, collection and outcome.",
	}, []string{"fn", "collection", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sheetsync",
		Subsystem: "sheet",
		Name:      "request_duration_seconds",
		Help:      "Latency of sheet RPC calls.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"fn"})
)

func observe(fn, collection string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(fn, collection, outcome).Inc()
	requestDuration.WithLabelValues(fn).Observe(time.Since(start).Seconds())
}
