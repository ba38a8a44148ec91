package api

// This file contains the middleware for handling staff authentication.

import (
	"context"
	"net/http"

	"github.com/cytoscape/cyweb/internal/models"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware verifies a staff session. If the session is valid, the user
// is injected into the request context for downstream handlers to use.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session_token")
		if err != nil {
			RespondWithError(w, http.StatusUnauthorized, "Unauthorized: No session token")
			return
		}

		user, err := s.store.GetUserFromSession(cookie.Value)
		if err != nil {
			RespondWithError(w, http.StatusUnauthorized, "Unauthorized: Invalid session")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserFromContext safely retrieves the user object from the request
// context. It returns nil if the user is not found.
func getUserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// staffFromRequest resolves the session cookie outside the middleware chain.
// The submit endpoint serves both anonymous submitters and staff editors, so
// it authenticates lazily once the edit mode is known.
func (s *Server) staffFromRequest(r *http.Request) *models.User {
	cookie, err := r.Cookie("session_token")
	if err != nil {
		return nil
	}
	user, err := s.store.GetUserFromSession(cookie.Value)
	if err != nil {
		return nil
	}
	return user
}
