package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// AuthContextKey is the key for storing AuthContext in request context
	AuthContextKey ContextKey = "authContext"
)

// Middleware creates an HTTP middleware that extracts and injects authentication context.
// This middleware:
// 1. Extracts the Authorization header
// 2. Parses the bearer token
// 3. Looks up the member session from the database
// 4. Injects the session into the request context
//
// If any step fails (missing token, invalid token, session not found),
// the request proceeds without auth context. Handlers should check for
// context availability. This allows public, protected, and optional-auth
// endpoints to share the same middleware chain.
func Middleware(authService *AuthService, tokenExtractor *TokenExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			// If no Authorization header, continue without auth context
			if authHeader == "" {
				slog.Debug("no authorization header provided")
				next.ServeHTTP(w, r)
				return
			}

			token, err := tokenExtractor.ExtractToken(authHeader)
			if err != nil {
				slog.Warn("failed to extract bearer token",
					"error", err,
					"auth_header_length", len(authHeader),
				)
				next.ServeHTTP(w, r)
				return
			}

			session, err := authService.GetSessionByToken(token)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					slog.Info("no member session for presented token")
				} else {
					slog.Warn("failed to look up member session", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			authCtx := &AuthContext{
				MemberSession: session,
			}

			ctx := context.WithValue(r.Context(), AuthContextKey, authCtx)
			r = r.WithContext(ctx)

			slog.Debug("auth context injected successfully",
				"member_id", session.MemberID,
			)

			next.ServeHTTP(w, r)
		})
	}
}

// GetAuthContext extracts the AuthContext from a request context.
// Returns nil if no auth context is available (request had no valid token).
func GetAuthContext(ctx context.Context) *AuthContext {
	authCtx, ok := ctx.Value(AuthContextKey).(*AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

// RequireAuth returns a middleware that requires authentication.
// If no auth context is found, returns 401 Unauthorized.
func RequireAuth(authService *AuthService, tokenExtractor *TokenExtractor) func(http.Handler) http.Handler {
	// Create the auth middleware once, not on every request
	authMiddleware := Middleware(authService, tokenExtractor)

	return func(next http.Handler) http.Handler {
		return authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := GetAuthContext(r.Context())
			if authCtx == nil {
				slog.Warn("authentication required but not provided",
					"method", r.Method,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"authentication required"}`))
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}
