// Package metrics holds the prometheus collectors for the catalog backend.
//
// Collectors are package-level so any layer can record into them; Register
// attaches them to a registry once at startup and Handler serves it.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qurrah"

var (
	// StoreQueryDuration tracks product/category store latency by backend,
	// operation and outcome.
	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of store queries in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"backend", "op", "outcome"},
	)

	// ControllerFetches counts catalog controller fetch resolutions.
	ControllerFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "controller_fetches_total",
			Help:      "Catalog controller fetch results by outcome (loaded, failed, stale).",
		},
		[]string{"outcome"},
	)

	// CacheLookups counts cache hits and misses by key family.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by key family and result.",
		},
		[]string{"family", "result"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register adds every collector plus the Go runtime collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		StoreQueryDuration,
		ControllerFetches,
		CacheLookups,
		RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveStore records one store call. Use with defer:
//
//	defer metrics.ObserveStore("postgres", "execute", time.Now(), &err)
func ObserveStore(backend, op string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
	}
	StoreQueryDuration.WithLabelValues(backend, op, outcome).Observe(time.Since(start).Seconds())
}
