package handlers

import (
	"net/http"
	"time"

	"github.com/yesaroun/taskboard/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "taskboard-api",
		"version": Version,
	})
}

// HandleReady handles GET /ready. Readiness includes database connectivity
// and cache status.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("Readiness check failed")
		response.ServiceUnavailable(w, "Database not available")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"uptime": time.Since(h.startTime).String(),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
	})
}
