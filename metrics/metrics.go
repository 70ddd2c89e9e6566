// Package metrics exports search statistics to Prometheus. A Collector
// implements astar.Observer, so it is attached to a search with
// astar.WithObserver(collector).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/rovermap/astar"
)

// Collector holds the search metrics registered on one registry.
type Collector struct {
	searches  *prometheus.CounterVec
	expanded  prometheus.Histogram
	duration  prometheus.Histogram
	routeLen  prometheus.Histogram
	lastRoute prometheus.Gauge
}

// NewCollector registers the search metrics on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rovermap_search_total",
			Help: "Total route searches by outcome",
		}, []string{"status"}),
		expanded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rovermap_search_expanded_nodes",
			Help:    "Nodes taken from the open set per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rovermap_search_duration_seconds",
			Help:    "Route search wall time",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}),
		routeLen: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rovermap_route_length_nodes",
			Help:    "Nodes in each found route",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		lastRoute: f.NewGauge(prometheus.GaugeOpts{
			Name: "rovermap_last_route_cost",
			Help: "Cost of the most recently found route",
		}),
	}
}

// SearchFinished records one search outcome.
func (c *Collector) SearchFinished(res astar.Result, elapsed time.Duration) {
	c.searches.WithLabelValues(statusLabel(res.Status)).Inc()
	c.expanded.Observe(float64(res.Expanded))
	c.duration.Observe(elapsed.Seconds())
	if res.Found() {
		c.routeLen.Observe(float64(len(res.Path)))
		c.lastRoute.Set(res.Cost)
	}
}

func statusLabel(s astar.Status) string {
	switch s {
	case astar.StatusFound:
		return "found"
	case astar.StatusNoRoute:
		return "no_route"
	case astar.StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Searches returns the counter for one status label: found, no_route or cancelled.
func (c *Collector) Searches(status string) prometheus.Counter {
	return c.searches.WithLabelValues(status)
}

// LastRouteCost returns the gauge holding the cost of the last found route.
func (c *Collector) LastRouteCost() prometheus.Gauge {
	return c.lastRoute
}
