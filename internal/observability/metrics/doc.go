// Package metrics provides the Prometheus collectors for postboard.
//
// It covers:
//   - Upstream API calls (count by endpoint and outcome, latency)
//   - Refresh cycles and the number of posts they render
//   - Comment toggles and currently bound button listeners
//
// All collectors are registered with the default registry through promauto
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	users, err := client.GetUsers(ctx)
//	metrics.RecordUpstreamRequest("users", metrics.OutcomeOf(err), time.Since(start))
package metrics
