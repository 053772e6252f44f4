package handlers

import "net/http"

// HealthResponse reports service liveness.
// swagger:model HealthResponse
type HealthResponse struct {
	// Status string
	// example: ok
	Status string `json:"status"`
}

// NewHealthHandler returns a liveness probe handler.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
