package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/yesaroun/taskboard/internal/server/middleware"
	"github.com/yesaroun/taskboard/internal/server/response"
	"github.com/yesaroun/taskboard/internal/store"
	"github.com/yesaroun/taskboard/pkg/logging"
)

const postListCachePrefix = "posts:list:"

// invalidatePostCaches drops cached listings and, when postID is nonzero,
// the cached detail for that post.
func (h *Handlers) invalidatePostCaches(postID int64) {
	h.cache.DeletePrefix(postListCachePrefix)
	if postID != 0 {
		h.cache.Delete(postDetailCacheKey(postID))
	}
}

func postDetailCacheKey(postID int64) string {
	return fmt.Sprintf("posts:detail:%d", postID)
}

// HandleListPosts handles GET /posts. Listing is public, cursor-paginated,
// newest first, and cached per cursor.
func (h *Handlers) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	var cursor int64
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "Invalid cursor", "cursor must be a non-negative integer")
			return
		}
		cursor = parsed
	}

	cacheKey := postListCachePrefix + strconv.FormatInt(cursor, 10)
	if cached, found := h.cache.Get(cacheKey); found {
		response.OK(w, cached)
		return
	}

	posts, next, err := h.store.Posts.List(r.Context(), cursor, store.DefaultPageSize)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result := postListResponse{Posts: posts, NextCursor: next}
	h.cache.Set(cacheKey, result)
	response.OK(w, result)
}

// HandleCreatePost handles POST /posts. Previously uploaded images may be
// attached by ID.
func (h *Handlers) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateTitle(req.Title); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := validateContent(req.Content); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	post, err := h.store.Posts.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if len(req.ImageIDs) > 0 {
		if err := h.store.Images.Attach(r.Context(), post.ID, user.ID, req.ImageIDs); err != nil {
			response.ErrorFromType(w, err)
			return
		}
	}

	h.invalidatePostCaches(0)
	logging.Ctx(r.Context()).Info().Int64("post_id", post.ID).Msg("Post created")
	response.Created(w, post)
}

// HandleGetPost handles GET /posts/{id}. Reading a post records a view for
// the authenticated reader asynchronously; anonymous reads are not counted.
// Anonymous reads are served from cache; authenticated reads bypass it so
// the reader sees their own view reflected.
func (h *Handlers) HandleGetPost(w http.ResponseWriter, r *http.Request, postID int64) {
	user, authErr := middleware.UserFrom(r.Context())
	anonymous := authErr != nil

	if anonymous {
		if cached, found := h.cache.Get(postDetailCacheKey(postID)); found {
			response.OK(w, cached)
			return
		}
	}

	post, err := h.store.Posts.GetByID(r.Context(), postID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	comments, err := h.store.Comments.ListByPost(r.Context(), postID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	images, err := h.store.Images.ListByPost(r.Context(), postID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	detail := postDetailResponse{Post: post, Comments: comments, Images: images}

	if anonymous {
		h.cache.Set(postDetailCacheKey(postID), detail)
	} else {
		h.recorder.Record(postID, user.ID)
		h.cache.Delete(postDetailCacheKey(postID))
	}

	response.OK(w, detail)
}

// HandleUpdatePost handles PATCH and PUT /posts/{id}. Both replace title
// and content; only the author may update.
func (h *Handlers) HandleUpdatePost(w http.ResponseWriter, r *http.Request, postID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateTitle(req.Title); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := validateContent(req.Content); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	post, err := h.store.Posts.Update(r.Context(), postID, user.ID, req.Title, req.Content)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	response.OK(w, post)
}

// HandleDeletePost handles DELETE /posts/{id}. Only the author may delete.
func (h *Handlers) HandleDeletePost(w http.ResponseWriter, r *http.Request, postID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if err := h.store.Posts.Delete(r.Context(), postID, user.ID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	logging.Ctx(r.Context()).Info().Int64("post_id", postID).Msg("Post deleted")
	response.NoContent(w)
}

// HandleLikePost handles POST /posts/{id}/like.
func (h *Handlers) HandleLikePost(w http.ResponseWriter, r *http.Request, postID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if err := h.store.Likes.Like(r.Context(), postID, user.ID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	response.Created(w, map[string]any{"post_id": postID, "liked": true})
}

// HandleUnlikePost handles DELETE /posts/{id}/like.
func (h *Handlers) HandleUnlikePost(w http.ResponseWriter, r *http.Request, postID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if err := h.store.Likes.Unlike(r.Context(), postID, user.ID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	response.NoContent(w)
}

// HandleCreateComment handles POST /posts/{id}/comments.
func (h *Handlers) HandleCreateComment(w http.ResponseWriter, r *http.Request, postID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateComment(req.Content); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	comment, err := h.store.Comments.Create(r.Context(), postID, user.ID, req.Content)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	response.Created(w, comment)
}

// HandleUpdateComment handles PATCH /posts/{postID}/comments/{commentID}.
func (h *Handlers) HandleUpdateComment(w http.ResponseWriter, r *http.Request, postID, commentID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateComment(req.Content); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	comment, err := h.store.Comments.Update(r.Context(), postID, commentID, user.ID, req.Content)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	response.OK(w, comment)
}

// HandleDeleteComment handles DELETE /posts/{postID}/comments/{commentID}.
func (h *Handlers) HandleDeleteComment(w http.ResponseWriter, r *http.Request, postID, commentID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if err := h.store.Comments.Delete(r.Context(), postID, commentID, user.ID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.invalidatePostCaches(postID)
	response.NoContent(w)
}
