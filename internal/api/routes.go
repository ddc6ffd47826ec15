package api

import "net/http"

// RegisterRoutes wires every endpoint onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Datasets
	mux.HandleFunc("POST /datasets", h.createDataset)
	mux.HandleFunc("GET /datasets", h.listDatasets)
	mux.HandleFunc("GET /datasets/{datasetID}", h.getDataset)
	mux.HandleFunc("DELETE /datasets/{datasetID}", h.deleteDataset)
	mux.HandleFunc("GET /datasets/{datasetID}/stats", h.getDatasetStats)
	mux.HandleFunc("GET /datasets/{datasetID}/export", h.exportDataset)
	mux.HandleFunc("POST /datasets/{datasetID}/reset", h.resetDataset)
	mux.HandleFunc("POST /datasets/{datasetID}/results", h.recordResults)

	// Items
	mux.HandleFunc("POST /datasets/{datasetID}/items", h.addItem)
	mux.HandleFunc("DELETE /datasets/{datasetID}/items/{itemID}", h.deleteItem)
	mux.HandleFunc("POST /datasets/{datasetID}/items/{itemID}/reset", h.resetItem)

	// Quiz sheets
	mux.HandleFunc("POST /datasets/{datasetID}/quizzes", h.createQuiz)

	// Test sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/reveal", h.revealQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/judge", h.judgeQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/skip", h.skipQuestion)
	mux.HandleFunc("POST /sessions/{sessionID}/advance", h.advanceSession)
	mux.HandleFunc("POST /sessions/{sessionID}/finish", h.finishSession)
}
