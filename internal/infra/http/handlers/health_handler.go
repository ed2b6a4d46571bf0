package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Pinger is any dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Dependencies map[string]Pinger
	Version      string
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler checks every non-nil dependency on each request.
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		Dependencies: deps,
		Version:      "1.0.0",
		StartTime:    time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.Dependencies))
	status := "healthy"
	for name, dep := range h.Dependencies {
		if dep == nil {
			deps[name] = "not configured"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			deps[name] = fmt.Sprintf("unhealthy: %v", err)
			status = "degraded"
			continue
		}
		deps[name] = "healthy"
	}

	response := HealthResponse{
		Status:       status,
		Message:      "API is running",
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	w.Header().Set("Content-Type", "application/json")
	if status == "degraded" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(response)
}

// Root answers the liveness check on "/".
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "HomeWiz Backend API is running"})
}
