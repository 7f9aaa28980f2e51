// Package http exposes the generated card documents over a small chi API.
package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "xwstats/internal/errors"
	"xwstats/internal/files"
	"xwstats/internal/infrastructure"
	"xwstats/pkg/contracts/domain"
)

// CardHandler serves generated card documents from the output directory.
// Documents are opaque to the server: whatever the last pipeline run wrote
// is what the dashboard gets.
type CardHandler struct {
	cardsDir string
	logger   *slog.Logger
}

// NewCardHandler creates a card handler over the given output directory.
func NewCardHandler(cardsDir string, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{cardsDir: cardsDir, logger: logger}
}

// Routes returns the card API router.
func (h *CardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{name}", h.Get)
	return r
}

// CardListResponse is the response for the card index endpoint.
type CardListResponse struct {
	Cards     []string `json:"cards"`
	Available []string `json:"available_documents"`
}

// Render implements render.Renderer.
func (resp *CardListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// List returns the card names the pipeline produces and the documents
// currently on disk.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := files.ListCardDocuments(h.cardsDir)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list card documents",
			slog.String("error", err.Error()))
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.FromAppError(err)))
		return
	}
	render.Render(w, r, &CardListResponse{Cards: domain.CardNames(), Available: docs})
}

// Get streams one card document (or the run manifest) as JSON.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !isKnownDocument(name) {
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrCardNotFound))
		return
	}

	path := filepath.Join(h.cardsDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrCardNotFound))
			return
		}
		infrastructure.LoggerWithContext(r.Context()).Error("failed to read card document",
			slog.String("card", name),
			slog.String("error", err.Error()))
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrInternalServer))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// isKnownDocument reports whether name is one of the six cards or the
// manifest. Anything else 404s without touching the filesystem.
func isKnownDocument(name string) bool {
	if name == "manifest" {
		return true
	}
	for _, card := range domain.CardNames() {
		if name == card {
			return true
		}
	}
	return false
}
