package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/yesaroun/taskboard/internal/auth"
	"github.com/yesaroun/taskboard/internal/store"
	"github.com/yesaroun/taskboard/pkg/errors"
)

type contextKey string

const authResultKey contextKey = "auth_result"

// AuthResult carries the outcome of token authentication for a request.
// Handlers that require a user check Err; public handlers may ignore it.
type AuthResult struct {
	User *store.User
	Err  error
}

// UserLoader resolves a user ID to a user record.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*store.User, error)
}

// Authenticate verifies the Bearer token and resolves the token subject to
// a user. The result, success or failure, is stored in the request context;
// rejection is left to the handlers so public endpoints share the chain.
func Authenticate(tokens *auth.TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := authenticate(r, tokens, users)
			ctx := context.WithValue(r.Context(), authResultKey, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, tokens *auth.TokenManager, users UserLoader) *AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" {
		return &AuthResult{Err: &errors.UnauthorizedError{
			CodeValue: "UNAUTHORIZED",
			Message:   "authentication required",
		}}
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return &AuthResult{Err: &errors.UnauthorizedError{
			CodeValue: "INVALID_AUTH_HEADER",
			Message:   "authorization header must be of the form 'Bearer <token>'",
		}}
	}

	claims, err := tokens.VerifyToken(token)
	if err != nil {
		return &AuthResult{Err: &errors.UnauthorizedError{
			CodeValue: "TOKEN_INVALID",
			Message:   "token is invalid or expired",
		}}
	}

	userID, err := claims.UserID()
	if err != nil {
		return &AuthResult{Err: &errors.UnauthorizedError{
			CodeValue: "TOKEN_INVALID",
			Message:   "token is invalid or expired",
		}}
	}

	user, err := users.GetByID(r.Context(), userID)
	if err != nil {
		return &AuthResult{Err: &errors.UnauthorizedError{
			CodeValue: "TOKEN_USER_NOT_FOUND",
			Message:   "token subject no longer exists",
		}}
	}

	return &AuthResult{User: user}
}

// UserFrom returns the authenticated user for the request, or the
// authentication error when the request carried no valid token.
func UserFrom(ctx context.Context) (*store.User, error) {
	result, ok := ctx.Value(authResultKey).(*AuthResult)
	if !ok {
		return nil, &errors.UnauthorizedError{
			CodeValue: "UNAUTHORIZED",
			Message:   "authentication required",
		}
	}
	if result.Err != nil {
		return nil, result.Err
	}
	return result.User, nil
}
