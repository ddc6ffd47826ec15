package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/studyforge/backend/internal/domain/dataset"
	"github.com/studyforge/backend/internal/domain/testsession"
	"github.com/studyforge/backend/internal/registry"
	"github.com/studyforge/backend/internal/selection"
	"github.com/studyforge/backend/internal/service"
	"github.com/studyforge/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store    store.Store
	sessions *registry.Registry
	progress *service.ProgressService
	selector *selection.Selector
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, sessions *registry.Registry, progress *service.ProgressService, selector *selection.Selector, logger *slog.Logger) *Handler {
	return &Handler{
		store:    s,
		sessions: sessions,
		progress: progress,
		selector: selector,
		logger:   logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON parses the request body into v. Returns false (and writes
// a 400) when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleError maps domain and store errors to HTTP status codes and
// writes the response. Returns true if an error was handled (caller
// should return).
func (h *Handler) handleError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, registry.ErrSessionNotFound),
		errors.Is(err, dataset.ErrItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, dataset.ErrEmptyName),
		errors.Is(err, dataset.ErrEmptyPrompt),
		errors.Is(err, dataset.ErrEmptyResponse),
		errors.Is(err, selection.ErrInvalidCount),
		errors.Is(err, selection.ErrInvalidRange),
		errors.Is(err, selection.ErrNoEligibleItems),
		errors.Is(err, selection.ErrUnknownMethod),
		errors.Is(err, testsession.ErrNoQuestions):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, testsession.ErrAlreadyRevealed),
		errors.Is(err, testsession.ErrAlreadyJudged),
		errors.Is(err, testsession.ErrNotJudged),
		errors.Is(err, testsession.ErrSessionFinished):
		respondError(w, http.StatusConflict, err.Error())

	default:
		h.logger.Error("internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// ItemResponse is the wire form of one item.
type ItemResponse struct {
	ID            string  `json:"id"`
	Seq           int     `json:"seq"`
	Prompt        string  `json:"prompt"`
	Response      string  `json:"response"`
	CorrectCount  int     `json:"correct_count"`
	TotalAttempts int     `json:"total_attempts"`
	Mastery       float64 `json:"mastery"`
}

func toItemResponse(it dataset.Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID,
		Seq:           it.Seq,
		Prompt:        it.Prompt,
		Response:      it.Response,
		CorrectCount:  it.CorrectCount,
		TotalAttempts: it.TotalAttempts,
		Mastery:       it.Mastery,
	}
}

func toItemResponses(items []dataset.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}
