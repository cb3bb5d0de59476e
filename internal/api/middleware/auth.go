package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hantaray/movie-api/internal/common"
	"github.com/hantaray/movie-api/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	UserIDCtxKey   contextKey = "userID"
)

// Authenticator is the bearer strategy: it rejects requests whose token
// is missing, malformed, expired or badly signed before any handler
// runs, and attaches the decoded identity to the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		username, err := security.GetUsernameFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UsernameCtxKey, username)
		ctx = context.WithValue(ctx, UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSelf restricts mutating user routes to the account named in the
// path: the token subject must match the {username} parameter.
func RequireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenUsername, ok := GetUsernameFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
			return
		}
		if tokenUsername != chi.URLParam(r, "username") {
			common.RespondWithError(w, http.StatusForbidden, "You can only modify your own account")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the authenticated username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the authenticated user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
