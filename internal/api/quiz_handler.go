package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/studyforge/backend/internal/domain/dataset"
	"github.com/studyforge/backend/internal/domain/testsession"
	"github.com/studyforge/backend/internal/selection"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuizRequest struct {
	Count       int    `json:"count"`
	Method      string `json:"method"`                // sequential | random | weighted
	RangeStart  *int   `json:"range_start,omitempty"` // 1-based inclusive
	RangeEnd    *int   `json:"range_end,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	FocusOnWeak bool   `json:"focus_on_weak"`
}

func (r *CreateQuizRequest) Validate() error {
	if r.Count < 1 {
		return errors.New("count must be at least 1")
	}
	return validateOrientation(r.Orientation)
}

// QuizQuestion carries the card already oriented: Front is what the
// sheet shows, Back what the student must produce.
type QuizQuestion struct {
	ItemID string `json:"item_id"`
	Seq    int    `json:"seq"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

type CreateQuizResponse struct {
	DatasetID   string         `json:"dataset_id"`
	GeneratedAt string         `json:"generated_at"`
	Orientation string         `json:"orientation"`
	Questions   []QuizQuestion `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /datasets/{datasetID}/quizzes
//
// Runs the selection engine and returns the chosen, oriented questions.
// Rendering (printable sheet, PDF) is the client's concern.
func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")

	var req CreateQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.store.LoadItems(r.Context(), datasetID)
	if h.handleError(w, err) {
		return
	}

	selected, err := h.runSelection(items, req)
	if h.handleError(w, err) {
		return
	}

	orientation := normalizeOrientation(req.Orientation)
	questions := make([]QuizQuestion, len(selected))
	for i, it := range selected {
		front, back := it.Prompt, it.Response
		if orientation == testsession.ResponseToPrompt {
			front, back = back, front
		}
		questions[i] = QuizQuestion{
			ItemID: it.ID,
			Seq:    it.Seq,
			Front:  front,
			Back:   back,
		}
	}

	respondJSON(w, http.StatusCreated, CreateQuizResponse{
		DatasetID:   datasetID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Orientation: string(orientation),
		Questions:   questions,
	})
}

// runSelection applies range restriction, the optional weak-item pool
// and the requested method in that order.
func (h *Handler) runSelection(items []dataset.Item, req CreateQuizRequest) ([]dataset.Item, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: %d", selection.ErrInvalidCount, req.Count)
	}

	var bounds *selection.Range
	if req.RangeStart != nil || req.RangeEnd != nil {
		bounds = &selection.Range{Start: 1, End: len(items)}
		if req.RangeStart != nil {
			bounds.Start = *req.RangeStart
		}
		if req.RangeEnd != nil {
			bounds.End = *req.RangeEnd
		}
	}

	method := selection.Method(req.Method)
	if req.Method == "" {
		method = selection.MethodRandom
	}

	if !req.FocusOnWeak {
		return h.selector.Select(items, req.Count, method, bounds)
	}

	// The range is defined on display order, so it applies before the
	// weak pool is built.
	restricted, err := h.selector.Select(items, len(items), selection.MethodSequential, bounds)
	if err != nil {
		return nil, err
	}
	pool := selection.ReviewPool(restricted, req.Count)
	return h.selector.Select(pool, req.Count, method, nil)
}

// validateOrientation accepts the two known orientations plus the
// empty string, which normalizeOrientation maps to the default.
func validateOrientation(s string) error {
	switch testsession.Orientation(s) {
	case "", testsession.PromptToResponse, testsession.ResponseToPrompt:
		return nil
	}
	return fmt.Errorf("unknown orientation %q", s)
}

func normalizeOrientation(s string) testsession.Orientation {
	if testsession.Orientation(s) == testsession.ResponseToPrompt {
		return testsession.ResponseToPrompt
	}
	return testsession.PromptToResponse
}
