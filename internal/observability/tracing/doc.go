// Package tracing wires OpenTelemetry spans into postboard.
//
// The HTTP middleware opens a server span per request and the placeholder
// client opens a client span per upstream call. Spans go to whatever
// TracerProvider is installed globally; without one they are no-ops.
//
// Example usage:
//
//	ctx, span := tracing.StartSpan(ctx, "placeholder.GetUsers",
//	    attribute.String("http.url", url))
//	defer span.End()
package tracing
