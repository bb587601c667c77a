package handlers

import (
	"net/http"

	"github.com/mindpump/mindpump-api/logger"
	"github.com/mindpump/mindpump-api/middleware"
)

// NewRouter builds the full route table and wraps it with the auth gate and
// request logging. CORS stays in main so deployments can configure origins.
func NewRouter(h *DBHandler, gate *middleware.BasicAuth, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Sets
	mux.HandleFunc("GET /api/sets", h.ListSets)
	mux.HandleFunc("POST /api/sets", h.CreateSet)
	mux.HandleFunc("GET /api/sets/{setID}", h.GetSetByID)
	mux.HandleFunc("PATCH /api/sets/{setID}", h.UpdateSetByID)
	mux.HandleFunc("DELETE /api/sets/{setID}", h.DeleteSetByID)

	// Card batches (scoped to one set)
	mux.HandleFunc("POST /api/sets/{setID}/cards/batch", h.CreateCardsBatch)
	mux.HandleFunc("PATCH /api/sets/{setID}/cards/batch", h.EditCardsBatch)
	mux.HandleFunc("DELETE /api/sets/{setID}/cards/batch", h.DeleteCardsBatch)
	mux.HandleFunc("PATCH /api/sets/{setID}/cards/study/batch", h.UpdateStudyBatch)

	// Single-card study status
	mux.HandleFunc("PATCH /api/cards/{cardID}/study", h.UpdateCardStudy)

	return middleware.RequestLogger(log)(gate.Handler(mux))
}
