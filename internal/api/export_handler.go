package api

import (
	"net/http"
	"time"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportItem struct {
	Seq           int     `json:"seq"`
	Prompt        string  `json:"prompt"`
	Response      string  `json:"response"`
	CorrectCount  int     `json:"correct_count"`
	TotalAttempts int     `json:"total_attempts"`
	Mastery       float64 `json:"mastery"`
}

type ExportData struct {
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
	Name       string       `json:"name"`
	Items      []ExportItem `json:"items"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /datasets/{datasetID}/export
func (h *Handler) exportDataset(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.GetDataset(r.Context(), r.PathValue("datasetID"))
	if h.handleError(w, err) {
		return
	}

	export := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Name:       d.Name,
		Items:      make([]ExportItem, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		export.Items = append(export.Items, ExportItem{
			Seq:           it.Seq,
			Prompt:        it.Prompt,
			Response:      it.Response,
			CorrectCount:  it.CorrectCount,
			TotalAttempts: it.TotalAttempts,
			Mastery:       it.Mastery,
		})
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+d.Name+`.json"`)
	respondJSON(w, http.StatusOK, export)
}
