package api

import (
	"errors"
	"net/http"
)

// ── Request / Response types ────────────────────────────────────────────────

type AddItemRequest struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

func (r *AddItemRequest) Validate() error {
	if r.Prompt == "" {
		return errors.New("prompt is required")
	}
	if r.Response == "" {
		return errors.New("response is required")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /datasets/{datasetID}/items
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.progress.AddItem(r.Context(), r.PathValue("datasetID"), req.Prompt, req.Response)
	if h.handleError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toItemResponse(item))
}

// DELETE /datasets/{datasetID}/items/{itemID}
//
// Deleting an item renumbers the remaining sequence densely.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	err := h.progress.DeleteItem(r.Context(), r.PathValue("datasetID"), r.PathValue("itemID"))
	if h.handleError(w, err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /datasets/{datasetID}/items/{itemID}/reset
func (h *Handler) resetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.progress.ResetItem(r.Context(), r.PathValue("datasetID"), r.PathValue("itemID"))
	if h.handleError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toItemResponse(item))
}
