package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/outfitoo/outfitoo/internal/oauth"
	"github.com/outfitoo/outfitoo/internal/session"
)

// OAuthProvider is the slice of the OAuth client the login flow needs.
type OAuthProvider interface {
	AuthCodeURL() (string, error)
	Exchange(ctx context.Context, code string) (string, error)
	Userinfo(ctx context.Context, accessToken string) (oauth.Identity, error)
}

// AuthHandler drives the Google login flow. A session cookie is only ever
// set after the full chain succeeds: code exchange, then userinfo; any
// failed leg sends the browser back to the landing page with no session.
type AuthHandler struct {
	oauth      OAuthProvider
	codec      *session.Codec
	cookieName string
	logger     *slog.Logger
}

func NewAuthHandler(oc OAuthProvider, codec *session.Codec, cookieName string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		oauth:      oc,
		codec:      codec,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Login redirects the user agent to the provider's authorization URL.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.oauth.AuthCodeURL()
	if err != nil {
		h.logger.Error("build auth url", "error", err)
		http.Error(w, "Login is not available", http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles the provider redirect carrying either an error or an
// authorization code.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Warn("oauth callback error", "error", errParam)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	accessToken, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	identity, err := h.oauth.Userinfo(r.Context(), accessToken)
	if err != nil {
		h.logger.Error("userinfo", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := h.codec.Issue(identity.Email)
	if err != nil {
		h.logger.Error("issue session", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.codec.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	h.logger.Info("login", "email", identity.Email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session cookie. The token itself stays valid until its
// TTL elapses; sessions are stateless so there is nothing server-side to
// revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
