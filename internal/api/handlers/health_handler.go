package handlers

import (
	"net/http"
	"time"

	"github.com/isdelr/taskdeck-be/internal/monitoring"
)

// HealthHandler serves the liveness endpoints. They carry no business
// logic and require no authentication.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new HealthHandler anchored at startup time.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// Root reports that the API is up and where to find it.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "API Server is running!",
		"status":  "success",
		"endpoints": map[string]string{
			"api":    "/api",
			"health": "/health",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports process uptime and a resource usage snapshot.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"uptime":    time.Since(h.started).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"system":    monitoring.Snapshot(),
	})
}
