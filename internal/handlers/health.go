package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the health probe response
// swagger:model HealthResponse
type HealthResponse struct {
	// Service status
	// default: ok
	Status string `json:"status"`
}

// NewHealthHandler returns an HTTP handler for the health probe.
// @Summary Health probe
// @Description Always returns ok. Not subject to rate limiting.
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Service is up"
// @Router /api/health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}
}
