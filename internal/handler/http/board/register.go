package board

import (
	"log/slog"
	"net/http"
)

// Register registers the page routes with mux.
func Register(mux *http.ServeMux, page Page, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	mux.Handle("GET /{$}", PageHandler{Page: page})
	mux.Handle("POST /select", SelectHandler{Page: page, Logger: logger})
	mux.Handle("POST /toggle", ToggleHandler{Page: page, Logger: logger})
	mux.Handle("GET /users/{id}", UserHandler{Page: page})
}
