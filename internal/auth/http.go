// ABOUTME: HTTP middleware and cookie handling for session authentication
// ABOUTME: Extracts the session cookie, verifies it, and attaches Identity to context

package auth

import (
	"encoding/json"
	"net/http"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "orgadmin_session"

// SetSessionCookie attaches the signed session token to the response.
// Secure is set in production so the cookie only travels over TLS.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// denyJSON writes the middleware's 401/403 bodies with the same
// {error, code} shape and content type the handlers use.
func denyJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg, "code": status})
}

// RequireSession creates an HTTP middleware that verifies the session cookie
// and attaches the caller's Identity to the request context. Any verification
// failure is a 401; no request proceeds with partial or default claims.
func RequireSession(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				denyJSON(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := issuer.Verify(cookie.Value)
			if err != nil {
				denyJSON(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			id := &Identity{
				Subject: claims.Subject,
				Email:   claims.Email,
				OrgID:   claims.OrgID,
				Role:    claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAction creates an HTTP middleware that checks the policy table for
// the given action. Must be used after RequireSession.
func RequireAction(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := FromContext(r.Context())
			if id == nil {
				denyJSON(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !Allowed(action, id.Role) {
				denyJSON(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
