package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/dialdesk/dialdesk/internal/api"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	response := api.HealthResponse{
		Status:               health.Status,
		Timestamp:            time.Now(),
		SchedulerStatus:      health.SchedulerStatus,
		DatabaseStatus:       health.DatabaseStatus,
		RedisStatus:          health.RedisStatus,
		CircuitBreakerStatus: health.CircuitBreakerStatus,
		CircuitBreakerState:  health.CircuitBreakerState,
	}

	// Degraded still answers 200 so a demo deployment looks alive to load
	// balancers; only a dead database flips to 503.
	if health.Status == api.Unhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}
