// Package metrics exports face cache activity to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
)

// Collector counts cache events per surface and records refreshes. It
// implements facecache.Observer and owns a private registry.
type Collector struct {
	registry *prometheus.Registry

	events        *prometheus.CounterVec
	realized      *prometheus.GaugeVec
	refreshErrors *prometheus.CounterVec
	refreshTime   prometheus.Histogram
}

// New registers the face metrics on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faces_cache_events_total",
				Help: "Face cache events by surface and kind (hit, miss, realize, evict, clear).",
			},
			[]string{"surface", "event"},
		),
		realized: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "faces_realized",
				Help: "Realized faces per surface after the last refresh.",
			},
			[]string{"surface"},
		),
		refreshErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faces_refresh_errors_total",
				Help: "Surfaces whose basic faces could not be realized.",
			},
			[]string{"surface"},
		),
		refreshTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "faces_refresh_duration_seconds",
			Help:    "Time spent recomputing basic faces across all surfaces.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	c.registry.MustRegister(c.events, c.realized, c.refreshErrors, c.refreshTime)
	return c
}

// Observe implements facecache.Observer.
func (c *Collector) Observe(surface string, event facecache.Event) {
	c.events.WithLabelValues(surface, event.String()).Inc()
}

// RecordRefresh stores the outcome of engine.Refresh.
func (c *Collector) RecordRefresh(results []engine.RefreshResult, took time.Duration) {
	c.refreshTime.Observe(took.Seconds())
	for _, res := range results {
		if res.Err != nil {
			c.refreshErrors.WithLabelValues(res.Surface).Inc()
			continue
		}
		c.realized.WithLabelValues(res.Surface).Set(float64(res.Faces))
	}
}

// Forget drops the series of a removed surface.
func (c *Collector) Forget(surface string) {
	labels := prometheus.Labels{"surface": surface}
	c.events.DeletePartialMatch(labels)
	c.realized.Delete(labels)
	c.refreshErrors.Delete(labels)
}

// Registry returns the registry the metrics live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
