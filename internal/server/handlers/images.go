package handlers

import (
	"net/http"

	"github.com/yesaroun/taskboard/internal/server/middleware"
	"github.com/yesaroun/taskboard/internal/server/response"
	"github.com/yesaroun/taskboard/pkg/logging"
)

// maxUploadFormBytes bounds the whole multipart form, not just the file
// part, to keep parsing from buffering unbounded input.
const maxUploadFormBytes = 12 << 20

// HandleUploadImage handles POST /images. The multipart "file" part is
// stored immediately; the returned image ID is attached to a post later via
// post creation.
func (h *Handlers) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadFormBytes)
	if err := r.ParseMultipartForm(maxUploadFormBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	saved, err := h.uploads.Save(file, header.Header.Get("Content-Type"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	img, err := h.store.Images.Create(r.Context(), user.ID, header.Filename, saved.Path, header.Header.Get("Content-Type"), saved.Size)
	if err != nil {
		// Roll back the stored file so a failed insert leaves no orphan.
		if rmErr := h.uploads.Remove(saved.Path); rmErr != nil {
			logging.Ctx(r.Context()).Warn().Err(rmErr).Str("path", saved.Path).Msg("Orphaned upload cleanup failed")
		}
		response.ErrorFromType(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("image_id", img.ID).Int64("size", saved.Size).Msg("Image uploaded")
	response.Created(w, img)
}

// HandleGetImage handles GET /images/{id}, returning image metadata.
func (h *Handlers) HandleGetImage(w http.ResponseWriter, r *http.Request, imageID int64) {
	img, err := h.store.Images.GetByID(r.Context(), imageID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, img)
}

// HandleDeleteImage handles DELETE /images/{id}. Only the owner may delete;
// the stored file is removed along with the record.
func (h *Handlers) HandleDeleteImage(w http.ResponseWriter, r *http.Request, imageID int64) {
	user, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	path, err := h.store.Images.Delete(r.Context(), imageID, user.ID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	if err := h.uploads.Remove(path); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("path", path).Msg("Stored file removal failed")
	}

	response.NoContent(w)
}
