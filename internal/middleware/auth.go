// Package middleware contains the session gate protecting
// authenticated routes.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VanVu13/simpleauth/internal/observability"
	"github.com/VanVu13/simpleauth/internal/session"
)

// unexported, collision-proof context keys
type userIDContextKeyType struct{}
type sessionIDContextKeyType struct{}

var (
	userIDKey    = userIDContextKeyType{}
	sessionIDKey = sessionIDContextKeyType{}
)

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// SessionIDFromContext extracts the validated session ID from context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// Gate decides per request whether a valid session exists. It never
// extends session lifetime.
type Gate struct {
	store     session.Store
	loginPath string
}

// NewGate creates a session gate redirecting interactive clients to
// loginPath on failure.
func NewGate(store session.Store, loginPath string) *Gate {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &Gate{store: store, loginPath: loginPath}
}

// RequireAuth wraps a handler so it only runs with a live session. On
// failure, machine clients get a structured 401 and interactive
// clients a redirect to the login page.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Resolve the client's expectation once, up front.
		wantsJSON := acceptsJSON(r)

		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			g.reject(w, r, wantsJSON)
			return
		}

		sess, err := g.store.Get(r.Context(), cookie.Value)
		if err != nil {
			// A store failure is not "no session".
			serverError(w, wantsJSON)
			return
		}
		if sess == nil {
			g.reject(w, r, wantsJSON)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
		ctx = context.WithValue(ctx, sessionIDKey, sess.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, wantsJSON bool) {
	if wantsJSON {
		observability.GateRejectionsTotal.WithLabelValues("json").Inc()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	observability.GateRejectionsTotal.WithLabelValues("redirect").Inc()
	http.Redirect(w, r, g.loginPath, http.StatusFound)
}

func serverError(w http.ResponseWriter, wantsJSON bool) {
	if wantsJSON {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}
	http.Error(w, "server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// acceptsJSON reports whether the client declared it accepts a
// machine-readable response.
func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
