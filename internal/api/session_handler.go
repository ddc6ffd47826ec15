package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/studyforge/backend/internal/domain/testsession"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	DatasetID   string `json:"dataset_id"`
	Count       int    `json:"count"`
	Method      string `json:"method"`
	RangeStart  *int   `json:"range_start,omitempty"`
	RangeEnd    *int   `json:"range_end,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	FocusOnWeak bool   `json:"focus_on_weak"`
}

func (r *CreateSessionRequest) Validate() error {
	if r.DatasetID == "" {
		return errors.New("dataset_id is required")
	}
	if r.Count < 1 {
		return errors.New("count must be at least 1")
	}
	return validateOrientation(r.Orientation)
}

// SessionQuestion shows only the oriented front until the answer is
// revealed or judged.
type SessionQuestion struct {
	ItemID   string `json:"item_id"`
	Front    string `json:"front"`
	Back     string `json:"back,omitempty"`
	State    string `json:"state"`
	Judgment string `json:"judgment,omitempty"`
}

type SessionResponse struct {
	ID          string            `json:"id"`
	DatasetID   string            `json:"dataset_id"`
	Orientation string            `json:"orientation"`
	CreatedAt   string            `json:"created_at"`
	Cursor      int               `json:"cursor"`
	Total       int               `json:"total"`
	Score       int               `json:"score"`
	Completed   bool              `json:"completed"`
	Finished    bool              `json:"finished"`
	Questions   []SessionQuestion `json:"questions"`
}

type JudgeRequest struct {
	Correct bool `json:"correct"`
}

type AdvanceResponse struct {
	Cursor    int  `json:"cursor"`
	Completed bool `json:"completed"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.store.LoadItems(r.Context(), req.DatasetID)
	if h.handleError(w, err) {
		return
	}

	selected, err := h.runSelection(items, CreateQuizRequest{
		Count:       req.Count,
		Method:      req.Method,
		RangeStart:  req.RangeStart,
		RangeEnd:    req.RangeEnd,
		FocusOnWeak: req.FocusOnWeak,
	})
	if h.handleError(w, err) {
		return
	}

	cfg := testsession.Config{Orientation: normalizeOrientation(req.Orientation)}
	sess, err := h.sessions.Create(req.DatasetID, selected, cfg)
	if h.handleError(w, err) {
		return
	}

	h.logger.Info("created session",
		"session_id", sess.ID,
		"dataset_id", req.DatasetID,
		"questions", len(selected),
	)
	respondJSON(w, http.StatusCreated, toSessionResponse(sess.View()))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess.View()))
}

// POST /sessions/{sessionID}/reveal
func (h *Handler) revealQuestion(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, err) {
		return
	}
	if h.handleError(w, sess.Reveal()) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(sess.View()))
}

// POST /sessions/{sessionID}/judge
//
// Records the self-assessment on the session and writes the attempt
// back to the item store, keyed by the question's stable item ID.
func (h *Handler) judgeQuestion(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, err) {
		return
	}

	var req JudgeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := sess.Judge(req.Correct)
	if h.handleError(w, err) {
		return
	}

	if _, err := h.progress.RecordJudgment(r.Context(), sess.DatasetID, item.ID, req.Correct); err != nil {
		// The session state already moved; surface the persistence
		// failure instead of pretending the counters were updated.
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(sess.View()))
}

// POST /sessions/{sessionID}/skip
//
// Skipping counts as an incorrect judgment and advances.
func (h *Handler) skipQuestion(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, err) {
		return
	}

	item, _, err := sess.Skip()
	if h.handleError(w, err) {
		return
	}

	if _, err := h.progress.RecordJudgment(r.Context(), sess.DatasetID, item.ID, false); err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(sess.View()))
}

// POST /sessions/{sessionID}/advance
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, err) {
		return
	}

	done, err := sess.Advance()
	if h.handleError(w, err) {
		return
	}

	_, cursor := sess.Current()
	respondJSON(w, http.StatusOK, AdvanceResponse{Cursor: cursor, Completed: done})
}

// POST /sessions/{sessionID}/finish
func (h *Handler) finishSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("sessionID"))
	if h.handleError(w, err) {
		return
	}

	sess.Finish()
	respondJSON(w, http.StatusOK, toSessionResponse(sess.View()))
}

func toSessionResponse(v testsession.Snapshot) SessionResponse {
	questions := make([]SessionQuestion, len(v.Questions))
	for i, q := range v.Questions {
		front, back := q.Prompt, q.Response
		if v.Orientation == testsession.ResponseToPrompt {
			front, back = back, front
		}

		sq := SessionQuestion{
			ItemID:   q.ID,
			Front:    front,
			State:    string(v.States[i]),
			Judgment: string(v.Judgments[i]),
		}
		// The back stays hidden while the question is pending.
		if v.States[i] != testsession.StatePending {
			sq.Back = back
		}
		questions[i] = sq
	}

	return SessionResponse{
		ID:          v.ID,
		DatasetID:   v.DatasetID,
		Orientation: string(v.Orientation),
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		Cursor:      v.Cursor,
		Total:       len(v.Questions),
		Score:       v.Score,
		Completed:   v.Completed,
		Finished:    v.Finished,
		Questions:   questions,
	}
}
