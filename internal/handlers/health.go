package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// counter reports the size of a store
type counter interface {
	Len() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger   *slog.Logger
	products counter
	sessions counter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, products, sessions counter) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		products: products,
		sessions: sessions,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Products  int       `json:"products"`
	Sessions  int       `json:"sessions"`
}

// ServeHTTP handles health check requests. An empty catalog reports
// "degraded" but still answers 200 so the cart keeps working.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Products:  h.products.Len(),
		Sessions:  h.sessions.Len(),
	}
	if response.Products == 0 {
		response.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
