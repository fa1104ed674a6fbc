package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/outfitoo/outfitoo/internal/auth"
	"github.com/outfitoo/outfitoo/internal/generate"
	"github.com/outfitoo/outfitoo/internal/store"
	ws "github.com/outfitoo/outfitoo/internal/websocket"
)

// maxUploadBytes bounds the whole multipart body (two photos).
const maxUploadBytes = 20 << 20

// ObjectStorage is the slice of the storage client the orchestrator needs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	PublicURL(key string) string
}

// OutfitHandler orchestrates generation: two uploaded photos in, one stored
// image plus one database row out.
type OutfitHandler struct {
	store     *store.OutfitStore
	storage   ObjectStorage
	generator generate.Generator
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewOutfitHandler(s *store.OutfitStore, os ObjectStorage, g generate.Generator, hub *ws.Hub, logger *slog.Logger) *OutfitHandler {
	return &OutfitHandler{
		store:     s,
		storage:   os,
		generator: g,
		hub:       hub,
		logger:    logger,
	}
}

// Generate handles POST /api/generate. Both file parts are validated before
// any external call is made; the storage upload and the row insert are not
// transactional, so an insert failure can strand an uploaded object — the
// orphan key is logged for reconciliation.
func (h *OutfitHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.Email(r.Context())
	if ownerID == "" {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	userPhoto, userFilename, err := readFilePart(r, "user_photo")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	outfitPhoto, outfitFilename, err := readFilePart(r, "outfit_photo")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.generator.Generate(r.Context(), userPhoto, outfitPhoto)
	if err != nil {
		h.logger.Error("generate image", "error", err, "owner", ownerID)
		writeJSONError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	ext := extensionFor(userFilename)
	key := fmt.Sprintf("%s/%s%s", sanitizeOwnerID(ownerID), uuid.NewString(), ext)

	if err := h.storage.Upload(r.Context(), key, contentTypeFor(ext), result); err != nil {
		h.logger.Error("upload result", "error", err, "key", key)
		writeJSONError(w, http.StatusInternalServerError, "storage upload failed")
		return
	}

	imageURL := h.storage.PublicURL(key)

	outfit, err := h.store.Create(ownerID, imageURL, optionalString(userFilename), optionalString(outfitFilename))
	if err != nil {
		// The object is already uploaded; without the row it is unreachable.
		h.logger.Warn("orphaned object", "key", key, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to record outfit")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(ws.OutfitCreated(ownerID, imageURL))
	}
	h.logger.Info("outfit generated", "owner", ownerID, "id", outfit.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"image_url": imageURL,
	})
}

// readFilePart reads one named multipart file fully into memory, rejecting
// missing and empty parts.
func readFilePart(r *http.Request, name string) ([]byte, string, error) {
	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("missing file part %q", name)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("read file part %q", name)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("file part %q is empty", name)
	}
	return data, header.Filename, nil
}

// optionalString maps "" to NULL at the store boundary; browsers may omit
// the filename on a multipart file part.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sanitizeOwnerID maps an identity to a path-safe key prefix: letters,
// digits, and hyphens pass through, everything else becomes an underscore.
func sanitizeOwnerID(ownerID string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, ownerID)
}

func extensionFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
