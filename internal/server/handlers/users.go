package handlers

import (
	"net/http"

	"github.com/yesaroun/taskboard/internal/auth"
	"github.com/yesaroun/taskboard/internal/server/middleware"
	"github.com/yesaroun/taskboard/internal/server/response"
	"github.com/yesaroun/taskboard/pkg/errors"
	"github.com/yesaroun/taskboard/pkg/logging"
)

// HandleRegister handles POST /users/register.
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validateEmail(req.Email); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := validateNickname(req.Nickname); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Password hashing failed")
		response.InternalError(w, err)
		return
	}

	user, err := h.store.Users.Create(r.Context(), req.Email, hash, req.Nickname)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User registered")
	response.Created(w, user)
}

// HandleLogin handles POST /users/login. Wrong email and wrong password are
// indistinguishable to the caller.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.store.Users.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(req.Password, user.Password) {
		response.Unauthorized(w, "INVALID_CREDENTIALS", "email or password is incorrect")
		return
	}

	token, err := h.tokens.CreateAccessToken(user.ID, user.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token issuance failed")
		response.InternalError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User logged in")
	response.OK(w, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// HandleLogout handles POST /users/logout. Tokens are stateless, so logout
// just confirms the caller was authenticated; the client discards the
// token.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.UserFrom(r.Context()); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "logged out"})
}

// HandleGetProfile handles GET /users/{id}/profile.
func (h *Handlers) HandleGetProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	user, err := h.store.Users.GetByID(r.Context(), userID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, user)
}

// HandleUpdateProfile handles PATCH /users/{id}/profile. Users can only
// modify their own profile.
func (h *Handlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	caller, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if caller.ID != userID {
		response.ErrorFromType(w, &errors.ForbiddenError{Message: "cannot modify another user's profile"})
		return
	}

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateNickname(req.Nickname); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	user, err := h.store.Users.UpdateNickname(r.Context(), userID, req.Nickname)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, user)
}

// HandleUpdatePassword handles PATCH /users/{id}/password. The current
// password must match and the new one must differ from it.
func (h *Handlers) HandleUpdatePassword(w http.ResponseWriter, r *http.Request, userID int64) {
	caller, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if caller.ID != userID {
		response.ErrorFromType(w, &errors.ForbiddenError{Message: "cannot change another user's password"})
		return
	}

	var req updatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !auth.VerifyPassword(req.CurrentPassword, caller.Password) {
		response.Unauthorized(w, "INVALID_CREDENTIALS", "current password is incorrect")
		return
	}
	if req.NewPassword == req.CurrentPassword {
		response.BadRequest(w, "Invalid new password", "new password must differ from the current one")
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Password hashing failed")
		response.InternalError(w, err)
		return
	}
	if err := h.store.Users.UpdatePassword(r.Context(), userID, hash); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", userID).Msg("Password changed")
	response.OK(w, map[string]string{"message": "password updated"})
}

// HandleDeleteUser handles DELETE /users/{id}. Users can only delete their
// own account. Their posts and comments remain attributed to the deleted
// account.
func (h *Handlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request, userID int64) {
	caller, err := middleware.UserFrom(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if caller.ID != userID {
		response.ErrorFromType(w, &errors.ForbiddenError{Message: "cannot delete another user's account"})
		return
	}

	if err := h.store.Users.Delete(r.Context(), userID); err != nil {
		response.ErrorFromType(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", userID).Msg("User deleted")
	response.NoContent(w)
}
