package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yesaroun/taskboard/internal/server/handlers"
	"github.com/yesaroun/taskboard/internal/server/middleware"
	"github.com/yesaroun/taskboard/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	// Create handlers instance
	h := handlers.New(s.store, s.tokens, s.uploads, s.recorder, s.cache, s.logger)

	// Register routes
	s.registerRoutes(mux, h)

	// Apply middleware chain
	handler := s.applyMiddleware(mux)

	return handler
}

// registerRoutes registers all HTTP routes. API routes are mounted twice,
// once under the canonical prefix and once under the legacy alias.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	// Root metadata; the bare pattern also swallows unmatched paths, which
	// the handler reports as 404
	mux.HandleFunc("/", h.HandleRoot)

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoint (no prefix, for probes)
	mux.HandleFunc("/health", h.HandleHealth)

	// Interactive API reference and the OpenAPI documents backing it
	mux.HandleFunc("/docs", h.HandleDocs)
	mux.HandleFunc("/openapi.json", h.HandleOpenAPIJSON)
	mux.HandleFunc("/openapi.yaml", h.HandleOpenAPIYAML)

	// Uploaded image files
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", s.uploads.FileServer()))

	for _, prefix := range []string{s.config.PathPrefix, s.config.LegacyPrefix} {
		if prefix == "" {
			continue
		}
		s.registerAPIRoutes(mux, h, prefix)
	}
}

// registerAPIRoutes mounts the API surface under the given prefix.
func (s *Server) registerAPIRoutes(mux *http.ServeMux, h *handlers.Handlers, prefix string) {
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Users endpoints
	mux.HandleFunc(prefix+"/users/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleRegister(w, r)
	})

	mux.HandleFunc(prefix+"/users/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleLogin(w, r)
	})

	mux.HandleFunc(prefix+"/users/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleLogout(w, r)
	})

	mux.HandleFunc(prefix+"/users/", func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(strings.TrimPrefix(r.URL.Path, prefix+"/users/"))

		switch {
		case len(parts) == 1:
			userID, ok := parseID(w, parts[0])
			if !ok {
				return
			}
			if r.Method == http.MethodDelete {
				h.HandleDeleteUser(w, r, userID)
				return
			}
		case len(parts) == 2 && parts[1] == "profile":
			userID, ok := parseID(w, parts[0])
			if !ok {
				return
			}
			switch r.Method {
			case http.MethodGet:
				h.HandleGetProfile(w, r, userID)
				return
			case http.MethodPatch:
				h.HandleUpdateProfile(w, r, userID)
				return
			}
		case len(parts) == 2 && parts[1] == "password":
			userID, ok := parseID(w, parts[0])
			if !ok {
				return
			}
			if r.Method == http.MethodPatch {
				h.HandleUpdatePassword(w, r, userID)
				return
			}
		default:
			response.NotFound(w, "", "resource not found")
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})

	// Posts endpoints
	mux.HandleFunc(prefix+"/posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.HandleListPosts(w, r)
		case http.MethodPost:
			h.HandleCreatePost(w, r)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})

	mux.HandleFunc(prefix+"/posts/", func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(strings.TrimPrefix(r.URL.Path, prefix+"/posts/"))
		if len(parts) == 0 {
			response.NotFound(w, "", "resource not found")
			return
		}

		postID, ok := parseID(w, parts[0])
		if !ok {
			return
		}

		switch {
		case len(parts) == 1:
			switch r.Method {
			case http.MethodGet:
				h.HandleGetPost(w, r, postID)
				return
			case http.MethodPatch, http.MethodPut:
				h.HandleUpdatePost(w, r, postID)
				return
			case http.MethodDelete:
				h.HandleDeletePost(w, r, postID)
				return
			}
		case len(parts) == 2 && parts[1] == "like":
			switch r.Method {
			case http.MethodPost:
				h.HandleLikePost(w, r, postID)
				return
			case http.MethodDelete:
				h.HandleUnlikePost(w, r, postID)
				return
			}
		case len(parts) == 2 && parts[1] == "comments":
			if r.Method == http.MethodPost {
				h.HandleCreateComment(w, r, postID)
				return
			}
		case len(parts) == 3 && parts[1] == "comments":
			commentID, ok := parseID(w, parts[2])
			if !ok {
				return
			}
			switch r.Method {
			case http.MethodPatch:
				h.HandleUpdateComment(w, r, postID, commentID)
				return
			case http.MethodDelete:
				h.HandleDeleteComment(w, r, postID, commentID)
				return
			}
		default:
			response.NotFound(w, "", "resource not found")
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})

	// Images endpoints
	mux.HandleFunc(prefix+"/images", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		h.HandleUploadImage(w, r)
	})

	mux.HandleFunc(prefix+"/images/", func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(strings.TrimPrefix(r.URL.Path, prefix+"/images/"))
		if len(parts) != 1 {
			response.NotFound(w, "", "resource not found")
			return
		}
		imageID, ok := parseID(w, parts[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.HandleGetImage(w, r, imageID)
		case http.MethodDelete:
			h.HandleDeleteImage(w, r, imageID)
		default:
			response.MethodNotAllowed(w, r.Method)
		}
	})
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Authentication resolves the Bearer token for every request; handlers
	// decide whether a user is required
	handler = middleware.Authenticate(s.tokens, s.store.Users)(handler)

	// Rate limiting (if enabled)
	if cfg.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, s.logger)
		handler = middleware.RateLimit(rateLimiter)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}

// parseID parses a positive integer path segment, writing a 400 on failure.
func parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(w, "Invalid ID", "path ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
