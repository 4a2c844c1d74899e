package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ResolutionsTotal counts resolution runs by terminal outcome.
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bubblemap_resolutions_total",
			Help: "Number of token resolution runs by outcome.",
		},
		[]string{"outcome"},
	)

	// RenderFailuresTotal counts failed image fetches by user-facing kind.
	RenderFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bubblemap_render_failures_total",
			Help: "Number of failed bubble map image fetches by failure kind.",
		},
		[]string{"kind"},
	)

	// MetadataMisses counts best-effort holder metadata fetches that came back empty.
	MetadataMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bubblemap_metadata_misses_total",
			Help: "Number of resolution runs completed without holder metadata.",
		},
	)
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once from main before serving /metrics.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		ResolutionsTotal,
		RenderFailuresTotal,
		MetadataMisses,
	)
}
