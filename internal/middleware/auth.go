// ABOUTME: Bearer token authentication middleware for the stub backend
// ABOUTME: Resolves the token to a user id and stores it in the request context

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator maps a bearer token to a user id. ok is false for unknown tokens.
type TokenValidator func(token string) (userID string, ok bool)

type contextKey string

const userIDKey contextKey = "userID"

// Auth returns middleware that rejects requests without a valid bearer token.
// There is no anonymous mode: every wrapped route belongs to a signed-in user.
func Auth(validate TokenValidator) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				slog.Debug("Auth rejected: no token", "path", sanitizePath(r.URL.Path))
				WriteJSONError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				slog.Debug("Auth rejected: invalid format", "path", sanitizePath(r.URL.Path))
				WriteJSONError(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}

			userID, ok := validate(token)
			if !ok {
				slog.Debug("Auth rejected: unknown token", "path", sanitizePath(r.URL.Path))
				WriteJSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next(w, r.WithContext(ctx))
		}
	}
}

// UserID extracts the authenticated user id from the request context.
// Returns "" if the request did not pass through Auth.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// WithUserID returns a copy of r carrying id, for handler tests
func WithUserID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIDKey, id))
}
