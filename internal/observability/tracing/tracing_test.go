package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"postboard/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func installExporter(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})
	return exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value
	}
	return out
}

func TestMiddleware_RecordsRequestSpan(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		status    int
		wantError bool
	}{
		{name: "page render", method: http.MethodGet, path: "/", status: http.StatusOK},
		{name: "toggle redirect", method: http.MethodPost, path: "/toggle", status: http.StatusSeeOther},
		{name: "unknown post", method: http.MethodPost, path: "/toggle", status: http.StatusNotFound},
		{name: "upstream failure", method: http.MethodPost, path: "/select", status: http.StatusInternalServerError, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			exporter := installExporter(t)
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			// Act
			handler.ServeHTTP(rr, req)

			// Assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, tt.method+" "+tt.path, span.Name)
			assert.Equal(t, trace.SpanKindServer, span.SpanKind)

			attrs := attrMap(span.Attributes)
			assert.Equal(t, int64(tt.status), attrs["http.status_code"].AsInt64())
			assert.Equal(t, tt.method, attrs["http.method"].AsString())
			assert.Equal(t, tt.path, attrs["http.path"].AsString())
			_, hasError := attrs["error"]
			assert.Equal(t, tt.wantError, hasError)

			assert.Len(t, rr.Header().Get("X-Trace-Id"), 32)
		})
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter := installExporter(t)
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rr.Header().Get("X-Trace-Id"))
}

func TestMiddleware_RecordsRequestID(t *testing.T) {
	exporter := installExporter(t)
	handler := requestid.Middleware(Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "req-42", attrMap(spans[0].Attributes)["request_id"].AsString())
}

func TestStartSpan_EndSpan(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
	}{
		{name: "success", err: nil, wantStatus: codes.Unset},
		{name: "failure", err: errors.New("unexpected status 500"), wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := installExporter(t)

			_, span := StartSpan(context.Background(), "placeholder.GetUsers",
				attribute.String("http.url", "http://example.test/users"))
			EndSpan(span, tt.err)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "placeholder.GetUsers", spans[0].Name)
			assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind)
			assert.Equal(t, tt.wantStatus, spans[0].Status.Code)
			assert.Equal(t, "http://example.test/users", attrMap(spans[0].Attributes)["http.url"].AsString())
		})
	}
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	rw := newStatusRecorder(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, rw.statusCode)

	rw.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusCreated, rw.statusCode)
}
