package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/studyforge/backend/internal/domain/dataset"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateDatasetRequest struct {
	Name string `json:"name"`
}

func (r *CreateDatasetRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type DatasetResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Items     []ItemResponse `json:"items,omitempty"`
}

type DatasetStatsResponse struct {
	Total          int     `json:"total"`
	AverageMastery float64 `json:"average_mastery"`
	Mastered       int     `json:"mastered_count"`
	Learning       int     `json:"learning_count"`
	Struggling     int     `json:"struggling_count"`
	Untouched      int     `json:"untouched_count"`
}

type RecordResultsRequest struct {
	// Results maps item IDs to the self-judged outcome.
	Results map[string]bool `json:"results"`
}

type RecordResultsResponse struct {
	Applied int `json:"applied"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /datasets
func (h *Handler) createDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.store.CreateDataset(r.Context(), req.Name)
	if h.handleError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, toDatasetResponse(d, false))
}

// GET /datasets
func (h *Handler) listDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.store.ListDatasets(r.Context())
	if h.handleError(w, err) {
		return
	}

	out := make([]DatasetResponse, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, toDatasetResponse(d, false))
	}
	respondJSON(w, http.StatusOK, out)
}

// GET /datasets/{datasetID}
func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.GetDataset(r.Context(), r.PathValue("datasetID"))
	if h.handleError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, toDatasetResponse(d, true))
}

// DELETE /datasets/{datasetID}
func (h *Handler) deleteDataset(w http.ResponseWriter, r *http.Request) {
	if h.handleError(w, h.store.DeleteDataset(r.Context(), r.PathValue("datasetID"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /datasets/{datasetID}/stats
func (h *Handler) getDatasetStats(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.LoadItems(r.Context(), r.PathValue("datasetID"))
	if h.handleError(w, err) {
		return
	}

	stats := dataset.Summarize(items)
	respondJSON(w, http.StatusOK, DatasetStatsResponse{
		Total:          stats.Total,
		AverageMastery: stats.AverageMastery,
		Mastered:       stats.Mastered,
		Learning:       stats.Learning,
		Struggling:     stats.Struggling,
		Untouched:      stats.Untouched,
	})
}

// POST /datasets/{datasetID}/reset
func (h *Handler) resetDataset(w http.ResponseWriter, r *http.Request) {
	if h.handleError(w, h.progress.ResetDataset(r.Context(), r.PathValue("datasetID"))) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /datasets/{datasetID}/results
//
// Bulk manual entry of printed quiz results: one judgment per item in
// a single request.
func (h *Handler) recordResults(w http.ResponseWriter, r *http.Request) {
	var req RecordResultsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Results) == 0 {
		respondError(w, http.StatusBadRequest, "results are required")
		return
	}

	applied, err := h.progress.RecordResults(r.Context(), r.PathValue("datasetID"), req.Results)
	if h.handleError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, RecordResultsResponse{Applied: applied})
}

func toDatasetResponse(d *dataset.Dataset, withItems bool) DatasetResponse {
	resp := DatasetResponse{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
	if withItems {
		resp.Items = toItemResponses(d.Items)
	}
	return resp
}
