package handlers

import "net/http"

// redocPage renders the API reference with ReDoc against the served
// OpenAPI document.
const redocPage = `<!DOCTYPE html>
<html>
  <head>
    <title>Taskboard API Reference</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
      body { margin: 0; padding: 0; }
    </style>
  </head>
  <body>
    <redoc spec-url="/openapi.json"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>
`

// HandleDocs handles GET /docs, serving the interactive API reference.
func (h *Handlers) HandleDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(redocPage))
}
