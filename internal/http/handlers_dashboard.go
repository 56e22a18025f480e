package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"txdash/internal/dataset"
	applog "txdash/internal/log"
)

// handleDashboard serves the full page shell. The mux routes every
// unregistered path here, so anything but "/" is a 404.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderDashboard(w, r, "dashboard.html")
}

// handleDashboardContent serves the dashboard partial for htmx refreshes.
func (s *Server) handleDashboardContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderDashboard(w, r, "dashboard_content.html")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, name string) {
	if s.templates == nil {
		http.Error(w, "Templates not available", http.StatusInternalServerError)
		return
	}

	view := s.getView(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, view); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render dashboard",
			applog.FieldError, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// getView returns the computed view for the source's current fingerprint,
// rebuilding on miss. Failed loads are never cached, so a fixed source file
// shows up on the next request rather than after the TTL.
func (s *Server) getView(ctx context.Context) dashboardView {
	key := s.viewKey(ctx)
	if key != "" {
		if view, ok := s.viewCache.Get(key); ok {
			return view
		}
	}

	view := buildDashboardView(ctx, s.source)
	if key != "" && view.LoadError == "" {
		s.viewCache.Set(key, view)
	}
	return view
}

// viewKey derives the cache key from the source fingerprint; sources that
// cannot be fingerprinted are rebuilt on every request.
func (s *Server) viewKey(ctx context.Context) string {
	fp, ok := s.source.(dataset.Fingerprinter)
	if !ok {
		return ""
	}
	key, err := fp.Fingerprint(ctx)
	if err != nil {
		slog.DebugContext(ctx, "Fingerprint unavailable", applog.FieldError, err)
		return ""
	}
	return key
}

// generateRequestID creates a random ID for request tracing.
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
