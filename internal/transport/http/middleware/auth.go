package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"funlife/internal/httputil"
	"funlife/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ViewerIDKey is the context key for the resolved viewer's user ID
	ViewerIDKey contextKey = "viewer_id"
)

// resolveViewer extracts the acting user from the request. It tries a
// Bearer access token first, then falls back to the X-User-ID header.
// Any failure resolves to "no viewer" rather than an error; endpoints
// that require authentication reject separately.
func resolveViewer(r *http.Request, auth *service.AuthService) (int64, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if userID, err := auth.ParseAccessToken(parts[1]); err == nil {
				return userID, true
			}
		}
	}

	if raw := r.Header.Get("X-User-ID"); raw != "" {
		if userID, err := strconv.ParseInt(raw, 10, 64); err == nil && userID > 0 {
			return userID, true
		}
	}

	return 0, false
}

// OptionalAuth resolves the viewer when possible and always lets the
// request through. Read endpoints use this so anonymous browsing works
// while authenticated viewers still get is_liked / is_following flags.
func OptionalAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := resolveViewer(r, auth); ok {
				r = r.WithContext(context.WithValue(r.Context(), ViewerIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a resolvable viewer.
func RequireAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := resolveViewer(r, auth)
			if !ok {
				httputil.WriteUnauthorized(w, "Authentication required")
				return
			}
			ctx := context.WithValue(r.Context(), ViewerIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetViewerID extracts the viewer's user ID from the request context.
// Returns the ID and true if a viewer was resolved, or 0 and false.
func GetViewerID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ViewerIDKey).(int64)
	return userID, ok
}

// OptionalViewerID returns a pointer for APIs that take an optional
// viewer, or nil for anonymous requests.
func OptionalViewerID(ctx context.Context) *int64 {
	if id, ok := GetViewerID(ctx); ok {
		return &id
	}
	return nil
}
