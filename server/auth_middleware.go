package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated username
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyRequestID stores the request id
	ContextKeyRequestID ContextKey = "request_id"
)

// Error details returned by the bearer guard
const (
	DetailNotAuthenticated  = "Not authenticated"
	DetailInvalidToken      = "Could not validate credentials"
	DetailTokenExpired      = "Token expired"
	DetailForbidden         = "Forbidden"
	DetailInvalidCredential = "Invalid credentials"
)

// RequireAuth is middleware that validates a Bearer access token and stores
// the token's username in the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, DetailNotAuthenticated)
				return
			}

			username, err := s.services.Auth.Authenticate(token)
			if err != nil {
				s.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("bearer token rejected")
				switch {
				case apperrors.Is(err, apperrors.ErrTokenExpired):
					writeUnauthorized(w, DetailTokenExpired)
				case apperrors.Is(err, apperrors.ErrUnknownSubject):
					writeDetail(w, http.StatusForbidden, DetailForbidden)
				default:
					writeUnauthorized(w, DetailInvalidToken)
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, username)
			next(w, r.WithContext(ctx))
		}
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// UserFromContext returns the username stored by RequireAuth.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(ContextKeyUserID).(string)
	return username, ok
}
