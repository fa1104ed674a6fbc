// Package oauth drives the Google authorization-code flow: building the
// authorization redirect, the server-to-server code exchange, and the
// userinfo lookup. It holds no state between the two legs; everything the
// flow needs travels in the provider redirect.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/outfitoo/outfitoo/internal/config"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
)

var defaultScopes = []string{"openid", "email", "profile"}

// ErrNotConfigured is returned when the client registration is incomplete
// and no authorization redirect can be constructed.
var ErrNotConfigured = errors.New("google oauth client not configured")

// Identity is the subset of the userinfo response this service cares about.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client talks to Google. Endpoint URLs are fields so tests can point them
// at local mocks.
type Client struct {
	cfg        config.GoogleConfig
	httpClient *http.Client

	authURL     string
	tokenURL    string
	userinfoURL string
}

// NewClient creates a Google OAuth client with a bounded-timeout HTTP client.
func NewClient(cfg config.GoogleConfig) *Client {
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		authURL:     googleAuthURL,
		tokenURL:    googleTokenURL,
		userinfoURL: googleUserinfoURL,
	}
}

// AuthCodeURL builds the provider authorization URL for the login redirect.
// It fails explicitly when the registration is incomplete rather than
// sending the user to a broken redirect.
func (c *Client) AuthCodeURL() (string, error) {
	if c.cfg.ClientID == "" || c.cfg.RedirectURI == "" {
		return "", ErrNotConfigured
	}

	u, err := url.Parse(c.authURL)
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("scope", strings.Join(defaultScopes, " "))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Exchange trades an authorization code for an access token. Non-2xx
// responses and responses without an access token are hard failures.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("token exchange failed: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token response missing access token")
	}
	return payload.AccessToken, nil
}

// Userinfo fetches the caller's identity with the access token.
func (c *Client) Userinfo(ctx context.Context, accessToken string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Identity{}, fmt.Errorf("userinfo failed: status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if id.Email == "" {
		return Identity{}, errors.New("userinfo missing email")
	}
	return id, nil
}
