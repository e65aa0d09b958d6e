package handlers

import (
	"net/http"

	"github.com/yesaroun/taskboard/internal/server/response"
)

// HandleRoot handles GET /. It returns basic service metadata and points
// clients at the interactive documentation.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		response.NotFound(w, "", "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	response.OK(w, map[string]any{
		"message": "Kakao TASK API",
		"version": Version,
		"docs":    "/docs",
	})
}
