// Package http holds the postboard server's cross-cutting handlers and
// middleware: health probes, request logging, panic recovery and metrics.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Health states reported by HealthHandler.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the /health body.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Upstream reports the state of the placeholder API client.
type Upstream interface {
	BaseURL() string
	BreakerState() string
	BreakerOpen() bool
}

// Readiness reports whether the page has finished initializing.
type Readiness interface {
	Ready() bool
}

// HealthHandler reports upstream and page status. An open breaker degrades
// the service but does not fail it: the page still renders without data.
type HealthHandler struct {
	Upstream Upstream
	Page     Readiness
	Version  string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	status := StatusHealthy
	code := http.StatusOK

	if h.Upstream != nil {
		check := checkUpstream(h.Upstream)
		checks["upstream"] = check
		if check.Status == StatusDegraded {
			status = StatusDegraded
		}
	} else {
		checks["upstream"] = CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
		status = StatusUnhealthy
		code = http.StatusServiceUnavailable
	}

	if h.Page != nil {
		page := CheckStatus{Status: StatusHealthy}
		if !h.Page.Ready() {
			page = CheckStatus{Status: StatusDegraded, Message: "page not initialized"}
			if status == StatusHealthy {
				status = StatusDegraded
			}
		}
		checks["page"] = page
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

func checkUpstream(u Upstream) CheckStatus {
	details := map[string]interface{}{
		"base_url":        u.BaseURL(),
		"circuit_breaker": u.BreakerState(),
	}
	if u.BreakerOpen() {
		return CheckStatus{
			Status:  StatusDegraded,
			Message: "circuit breaker open",
			Details: details,
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

// ReadyHandler answers readiness probes: 200 once the page is initialized.
type ReadyHandler struct {
	Page Readiness
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Page == nil || !h.Page.Ready() {
		http.Error(w, "page not initialized", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
