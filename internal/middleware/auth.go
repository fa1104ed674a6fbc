package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/outfitoo/outfitoo/internal/auth"
	"github.com/outfitoo/outfitoo/internal/session"
)

// RequireAuth guards page routes. A missing or invalid session cookie sends
// the browser back to the public landing page; expired, forged, and
// malformed cookies are indistinguishable to the client. On success the
// resolved identity is injected into the request context. The gate performs
// no side effects: no refresh, no sliding expiration.
func RequireAuth(codec *session.Codec, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := verifyCookie(r, codec, cookieName)
			if !ok {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			ctx := auth.WithIdentity(r.Context(), auth.Identity{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthAPI guards API routes. Failures get a 401 JSON body with no
// internal detail.
func RequireAuthAPI(codec *session.Codec, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := verifyCookie(r, codec, cookieName)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			ctx := auth.WithIdentity(r.Context(), auth.Identity{Email: email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyCookie(r *http.Request, codec *session.Codec, cookieName string) (string, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	email, err := codec.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return email, true
}
