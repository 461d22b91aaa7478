package metrics

import (
	"time"
)

// Outcome labels for upstream requests.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OutcomeOf maps an accessor error to an outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// RecordUpstreamRequest records one request to the placeholder API.
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordUpstreamSkipped records an accessor call that needed no request.
func RecordUpstreamSkipped(endpoint string) {
	UpstreamSkippedTotal.WithLabelValues(endpoint).Inc()
}

// RecordRefresh records a completed refresh cycle and how many posts it rendered.
func RecordRefresh(duration time.Duration, posts int) {
	RefreshCyclesTotal.Inc()
	RefreshDuration.Observe(duration.Seconds())
	if posts > 0 {
		PostsRendered.Add(float64(posts))
	}
}

// RecordCommentToggle records a toggle; visible is the state after the toggle.
func RecordCommentToggle(visible bool) {
	state := "hidden"
	if visible {
		state = "visible"
	}
	CommentTogglesTotal.WithLabelValues(state).Inc()
}

// SetBoundButtonListeners updates the bound listener gauge.
func SetBoundButtonListeners(count int) {
	BoundButtonListeners.Set(float64(count))
}
