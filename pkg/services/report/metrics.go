package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rendersTotal counts render attempts.
	// Labels: format, status (ok, error)
	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "legal_atlas",
		Subsystem: "report",
		Name:      "renders_total",
		Help:      "Total report render attempts by format and outcome",
	}, []string{"format", "status"})

	// renderFallbacks counts degraded results served as plain text.
	// Labels: format (the format that failed)
	renderFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "legal_atlas",
		Subsystem: "report",
		Name:      "render_fallbacks_total",
		Help:      "Total renders that fell back to plain text",
	}, []string{"format"})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "legal_atlas",
		Subsystem: "report",
		Name:      "render_duration_seconds",
		Help:      "Report render latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"format"})

	invalidSelections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "legal_atlas",
		Subsystem: "report",
		Name:      "invalid_selections_total",
		Help:      "Total export requests rejected for selecting no section",
	})

	riskScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "legal_atlas",
		Subsystem: "risk",
		Name:      "score",
		Help:      "Distribution of computed risk scores",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)
