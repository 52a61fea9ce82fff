package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wonny/matchday/internal/analysis"
	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/pkg/logger"
)

// Analyses stores saved analyses per user
type Analyses interface {
	Save(ctx context.Context, userID string, req analysis.SaveRequest) (*analysis.Analysis, error)
	List(ctx context.Context, userID string, limit int) ([]analysis.Summary, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*analysis.Analysis, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// AnalysisHandler serves saved analyses. The caller is identified by X-User-ID.
type AnalysisHandler struct {
	analyses Analyses
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(a Analyses, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyses: a,
		logger:   log,
	}
}

// ListAnalyses returns the caller's analyses, newest first
// GET /api/analysis?limit=
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.analyses.List(r.Context(), userID(r), limit)
	if err != nil {
		h.respondAnalysisError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"analyses": list})
}

// SaveAnalysis stores a lineup, predicting the attached match if present
// POST /api/analysis
func (h *AnalysisHandler) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysis.SaveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeMalformedRequest})
		return
	}

	a, err := h.analyses.Save(r.Context(), userID(r), req)
	if err != nil {
		h.respondAnalysisError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// GetAnalysis returns one of the caller's analyses
// GET /api/analysis/{id}
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid analysis id")
		return
	}

	a, err := h.analyses.Get(r.Context(), userID(r), id)
	if err != nil {
		h.respondAnalysisError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// DeleteAnalysis removes one of the caller's analyses
// DELETE /api/analysis/{id}
func (h *AnalysisHandler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid analysis id")
		return
	}

	if err := h.analyses.Delete(r.Context(), userID(r), id); err != nil {
		h.respondAnalysisError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalysisHandler) respondAnalysisError(w http.ResponseWriter, err error) {
	var verr *contracts.ValidationError
	var serr *contracts.SignalError

	switch {
	case errors.Is(err, analysis.ErrNoUser):
		respondError(w, http.StatusUnauthorized, "Missing "+UserHeader+" header")
	case errors.Is(err, analysis.ErrNotFound):
		respondError(w, http.StatusNotFound, "Analysis not found")
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Code: CodeMalformedRequest, Field: verr.Field})
	case errors.As(err, &serr):
		h.logger.WithError(err).Error("Prediction for analysis failed")
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "prediction failed",
			Code:   CodeSignalFailure,
			Signal: string(serr.Signal),
		})
	default:
		h.logger.WithError(err).Error("Analysis request failed")
		respondError(w, http.StatusInternalServerError, "Failed to process analysis")
	}
}
