package handler

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/outfitoo/outfitoo/internal/auth"
	"github.com/outfitoo/outfitoo/internal/session"
	"github.com/outfitoo/outfitoo/internal/store"
)

// TemplateHandler renders the page routes.
type TemplateHandler struct {
	outfitStore *store.OutfitStore
	codec       *session.Codec
	cookieName  string
	templates   *template.Template
	logger      *slog.Logger
}

func NewTemplateHandler(os *store.OutfitStore, codec *session.Codec, cookieName string, logger *slog.Logger) *TemplateHandler {
	tmpl := template.Must(template.ParseGlob("web/templates/*.html"))
	return &TemplateHandler{
		outfitStore: os,
		codec:       codec,
		cookieName:  cookieName,
		templates:   tmpl,
		logger:      logger,
	}
}

// Landing renders the public landing page, or bounces straight to the
// dashboard when the visitor already has a valid session.
func (h *TemplateHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if _, err := h.codec.Verify(cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.render(w, "landing.html", map[string]any{
		"Title": "Outfitoo",
	})
}

// Dashboard renders the upload/generate page.
func (h *TemplateHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	h.render(w, "dashboard.html", map[string]any{
		"Title": "Dashboard — Outfitoo",
		"Email": id.Email,
	})
}

// History renders the caller's generated outfits, newest first.
func (h *TemplateHandler) History(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	outfits, err := h.outfitStore.ListByOwner(id.Email)
	if err != nil {
		h.logger.Error("list outfits", "error", err, "owner", id.Email)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	h.render(w, "history.html", map[string]any{
		"Title":   "History — Outfitoo",
		"Email":   id.Email,
		"Outfits": outfits,
	})
}

func (h *TemplateHandler) render(w http.ResponseWriter, name string, data any) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
	}
}
