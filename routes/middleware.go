package routes

import (
	"net/http"
	"strings"

	"vidserve/logger"
)

// SessionCookieName is the cookie carrying the browser session token.
const SessionCookieName = "token"

// publicPaths is the closed allow-list of paths served without identity.
// Upload, download and catalog paths must never appear here.
var publicPaths = map[string]bool{
	"/login":     true,
	"/api/login": true,
	"/health":    true,
	"/version":   true,
}

// authGate classifies every request before any handler runs. Public paths
// pass through with no identity. API paths (under /api/) authenticate via
// bearer header and fail with 401; browser paths authenticate via the
// session cookie and redirect to the login form. On success the resolved
// identity is attached to the request context.
func (h *Handler) authGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			identity, err := h.tokens.Verify(bearerToken(r))
			if err != nil {
				logger.Debugf("Rejected API request to %s: %v", r.URL.Path, err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		identity, err := h.tokens.Verify(cookie.Value)
		if err != nil {
			logger.Debugf("Rejected browser request to %s: %v", r.URL.Path, err)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// bearerToken extracts the token from an Authorization: Bearer header,
// returning "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[len("Bearer "):])
}
