package middleware

import (
	"context"
	"log"
	"net/http"

	"moviepicks/internal/httputil"
	"moviepicks/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionKey is the context key for the request's session
	SessionKey contextKey = "session"
)

// SessionMiddleware resolves (or mints) the visitor's session and stores it
// in the request context. Every route runs behind it, so handlers can assume
// a session is always present.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Load(r.Context(), w, r)
			if err != nil {
				log.Printf("[session] failed to load session: %v", err)
				httputil.WriteInternalError(w, "Failed to load session")
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the session from the request context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}

// RequireUser redirects anonymous visitors to the login page.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSession(r.Context())
		if !ok || !sess.Authenticated {
			httputil.Redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}
