package handler

import (
	"database/sql"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/outfitoo/outfitoo/internal/auth"
	"github.com/outfitoo/outfitoo/internal/database"
	"github.com/outfitoo/outfitoo/internal/session"
	"github.com/outfitoo/outfitoo/internal/store"
)

const pageTemplates = `
{{define "landing.html"}}<h1>{{.Title}}</h1>{{end}}
{{define "dashboard.html"}}<p>{{.Email}}</p>{{end}}
{{define "history.html"}}<p>{{.Email}}</p><ul>{{range .Outfits}}<li>{{.ImageURL}}</li>{{end}}</ul>{{end}}
`

func setupTemplateHandler(t *testing.T) (*TemplateHandler, *session.Codec, *store.OutfitStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	codec := session.NewCodec("test-secret", time.Hour)
	outfitStore := store.NewOutfitStore(db)
	h := &TemplateHandler{
		outfitStore: outfitStore,
		codec:       codec,
		cookieName:  testCookieName,
		templates:   template.Must(template.New("pages").Parse(pageTemplates)),
		logger:      discardLogger(),
	}
	return h, codec, outfitStore, db
}

func TestLandingRedirectsWithValidSession(t *testing.T) {
	h, codec, _, _ := setupTemplateHandler(t)

	token, err := codec.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.Landing(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

func TestLandingRendersWithoutSession(t *testing.T) {
	h, _, _, _ := setupTemplateHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.Landing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Outfitoo") {
		t.Errorf("body = %q, want landing content", rec.Body.String())
	}
}

func TestLandingRendersWithInvalidSession(t *testing.T) {
	h, _, _, _ := setupTemplateHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	h.Landing(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (no redirect for a bad cookie)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Outfitoo") {
		t.Errorf("body = %q, want landing content", rec.Body.String())
	}
}

func TestLandingUnknownPath(t *testing.T) {
	h, _, _, _ := setupTemplateHandler(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	h.Landing(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDashboardRendersEmail(t *testing.T) {
	h, _, _, _ := setupTemplateHandler(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Email: "alice@example.com"}))
	rec := httptest.NewRecorder()
	h.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Errorf("body = %q, want email", rec.Body.String())
	}
}

func TestHistoryListsOwnerOutfitsNewestFirst(t *testing.T) {
	h, _, outfitStore, _ := setupTemplateHandler(t)

	if _, err := outfitStore.Create("alice@example.com", "https://cdn/first.jpg", nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := outfitStore.Create("alice@example.com", "https://cdn/second.jpg", nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := outfitStore.Create("bob@example.com", "https://cdn/other.jpg", nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest("GET", "/history", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Email: "alice@example.com"}))
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "other.jpg") {
		t.Error("body contains another owner's outfit")
	}
	first := strings.Index(body, "first.jpg")
	second := strings.Index(body, "second.jpg")
	if first < 0 || second < 0 {
		t.Fatalf("body = %q, want both outfits", body)
	}
	if second > first {
		t.Error("outfits not ordered newest first")
	}
}

func TestHistoryStoreError(t *testing.T) {
	h, _, _, db := setupTemplateHandler(t)
	db.Close()

	req := httptest.NewRequest("GET", "/history", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Email: "alice@example.com"}))
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
