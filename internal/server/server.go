package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/outfitoo/outfitoo/internal/config"
	"github.com/outfitoo/outfitoo/internal/generate"
	"github.com/outfitoo/outfitoo/internal/handler"
	"github.com/outfitoo/outfitoo/internal/middleware"
	"github.com/outfitoo/outfitoo/internal/oauth"
	"github.com/outfitoo/outfitoo/internal/session"
	"github.com/outfitoo/outfitoo/internal/storage"
	"github.com/outfitoo/outfitoo/internal/store"
	ws "github.com/outfitoo/outfitoo/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	codec       *session.Codec
	cookieName  string
	templateH   *handler.TemplateHandler
	authH       *handler.AuthHandler
	outfitH     *handler.OutfitHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL)

	outfitStore := store.NewOutfitStore(db)
	oauthClient := oauth.NewClient(cfg.Google)
	storageClient := storage.New(cfg.S3)
	generator := generate.NewPassthrough(cfg.GenerationAPIKey)

	return &Server{
		db:          db,
		hub:         hub,
		codec:       codec,
		cookieName:  cfg.CookieName,
		templateH:   handler.NewTemplateHandler(outfitStore, codec, cfg.CookieName, logger.With("component", "template")),
		authH:       handler.NewAuthHandler(oauthClient, codec, cfg.CookieName, logger.With("component", "auth")),
		outfitH:     handler.NewOutfitHandler(outfitStore, storageClient, generator, hub, logger.With("component", "outfit")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth required)
	mux.HandleFunc("GET /", s.templateH.Landing)
	mux.HandleFunc("GET /auth/google/login", s.rateLimitedHandler(s.authH.Login))
	mux.HandleFunc("GET /auth/google/callback", s.rateLimitedHandler(s.authH.Callback))
	mux.HandleFunc("GET /auth/logout", s.authH.Logout)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	mux.HandleFunc("GET /health", s.healthHandler)

	// Page routes — unauthenticated visitors are bounced to the landing page
	pageAuth := middleware.RequireAuth(s.codec, s.cookieName)
	mux.Handle("GET /dashboard", pageAuth(http.HandlerFunc(s.templateH.Dashboard)))
	mux.Handle("GET /history", pageAuth(http.HandlerFunc(s.templateH.History)))

	// API routes — unauthenticated callers get a JSON 401
	apiAuth := middleware.RequireAuthAPI(s.codec, s.cookieName)
	mux.Handle("POST /api/generate", apiAuth(s.rateLimitedHandler(s.outfitH.Generate)))
	mux.Handle("GET /ws", apiAuth(ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket"))))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
