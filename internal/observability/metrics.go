package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// render service.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec // labels: outcome={success,error}
	RenderDuration prometheus.Histogram

	// Geometry metrics.
	RegionsRendered prometheus.Histogram
	ViewportSpanKm  prometheus.Histogram

	// Upstream isoline cache metrics.
	IsolineCacheLookups *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all render metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isomap",
			Name:      "renders_total",
			Help:      "Render requests by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isomap",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete geocode-fetch-plan-draw cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RegionsRendered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isomap",
			Name:      "regions_rendered",
			Help:      "Number of annulus regions per rendered plan.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		ViewportSpanKm: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isomap",
			Name:      "viewport_span_km",
			Help:      "Metric width of the rendered viewport in kilometers.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		IsolineCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isomap",
			Name:      "isoline_cache_lookups_total",
			Help:      "Isoline cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderDuration,
		m.RegionsRendered,
		m.ViewportSpanKm,
		m.IsolineCacheLookups,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RendersTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "isomap", Name: "renders_total"}, []string{"outcome"}),
		RenderDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "isomap", Name: "render_duration_seconds"}),
		RegionsRendered:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "isomap", Name: "regions_rendered"}),
		ViewportSpanKm:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "isomap", Name: "viewport_span_km"}),
		IsolineCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "isomap", Name: "isoline_cache_lookups_total"}, []string{"result"}),
	}
}
