package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream metrics track calls to the placeholder API.
var (
	// UpstreamRequestsTotal counts API requests by endpoint and outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests sent to the placeholder API",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration measures API request latency in seconds
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Placeholder API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	// UpstreamSkippedTotal counts accessor calls that issued no request (zero id)
	UpstreamSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_skipped_total",
			Help: "Accessor calls skipped because no identifier was supplied",
		},
		[]string{"endpoint"},
	)
)

// Page metrics track the document lifecycle.
var (
	// RefreshCyclesTotal counts completed refresh cycles
	RefreshCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_refresh_cycles_total",
			Help: "Total number of completed refresh cycles",
		},
	)

	// RefreshDuration measures a full detach-clear-rebuild-attach cycle
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_refresh_duration_seconds",
			Help:    "Time taken by one refresh cycle",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// PostsRendered counts rendered post articles
	PostsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_posts_rendered_total",
			Help: "Total number of post articles rendered",
		},
	)

	// CommentTogglesTotal counts toggles by resulting state
	CommentTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_comment_toggles_total",
			Help: "Total number of comment section toggles",
		},
		[]string{"state"},
	)

	// BoundButtonListeners tracks click listeners currently bound to post buttons
	BoundButtonListeners = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_bound_button_listeners",
			Help: "Number of click listeners bound to post buttons",
		},
	)
)
