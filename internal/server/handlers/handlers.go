// Package handlers provides HTTP request handlers for the taskboard API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yesaroun/taskboard/internal/auth"
	"github.com/yesaroun/taskboard/internal/server/cache"
	"github.com/yesaroun/taskboard/internal/server/response"
	"github.com/yesaroun/taskboard/internal/storage"
	"github.com/yesaroun/taskboard/internal/store"
	"github.com/yesaroun/taskboard/internal/views"
)

// Version is the API version reported by the root and health endpoints.
const Version = "1.0.0"

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	store     *store.Store
	tokens    *auth.TokenManager
	uploads   *storage.Storage
	recorder  *views.Recorder
	cache     *cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(
	st *store.Store,
	tokens *auth.TokenManager,
	uploads *storage.Storage,
	recorder *views.Recorder,
	c *cache.Cache,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		store:     st,
		tokens:    tokens,
		uploads:   uploads,
		recorder:  recorder,
		cache:     c,
		logger:    logger,
		startTime: time.Now(),
	}
}

// decodeJSON parses the request body into dst. A malformed body yields a
// 400 written to w, and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return false
	}
	return true
}
