package handlers

import (
	"net/http"

	"github.com/yesaroun/taskboard/internal/embedded/openapi"
)

// HandleOpenAPIJSON serves the embedded OpenAPI 3.0 specification in JSON format.
func (h *Handlers) HandleOpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	_, _ = w.Write(openapi.SpecJSON)
}

// HandleOpenAPIYAML serves the embedded OpenAPI 3.0 specification in YAML format.
func (h *Handlers) HandleOpenAPIYAML(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	_, _ = w.Write(openapi.SpecYAML)
}
