// Package observability groups the logging, metrics and tracing support used
// by the postboard server and render CLI.
//
// Subpackages:
//   - logging: slog construction, level parsing and context propagation
//   - metrics: Prometheus collectors for upstream calls and page activity
//   - tracing: OpenTelemetry spans for HTTP requests and API calls
package observability
