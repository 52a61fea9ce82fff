package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/prediction"
	"github.com/wonny/matchday/pkg/logger"
)

// Predictor runs one prediction
type Predictor interface {
	Predict(ctx context.Context, req contracts.MatchRequest) (*prediction.Decision, error)
}

// PredictHandler serves match predictions
// ⭐ SSOT: the HTTP prediction contract is defined only here
type PredictHandler struct {
	predictor Predictor
	logger    *logger.Logger
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictor Predictor, log *logger.Logger) *PredictHandler {
	return &PredictHandler{
		predictor: predictor,
		logger:    log,
	}
}

// PredictRequest is the wire form of a match request. Ratings are pointers so
// that a missing rating is rejected instead of read as 0.
type PredictRequest struct {
	TeamA          string          `json:"team_a"`
	TeamB          string          `json:"team_b"`
	LeftFormation  string          `json:"left_formation"`
	RightFormation string          `json:"right_formation"`
	LeftPlaying11  contracts.Squad `json:"left_playing_11"`
	RightPlaying11 contracts.Squad `json:"right_playing_11"`
	LeftRating     *float64        `json:"left_rating"`
	RightRating    *float64        `json:"right_rating"`
}

// ToMatchRequest converts the wire form, failing on missing ratings
func (p PredictRequest) ToMatchRequest() (contracts.MatchRequest, error) {
	if p.LeftRating == nil {
		return contracts.MatchRequest{}, &contracts.ValidationError{Field: "left_rating", Message: "is required"}
	}
	if p.RightRating == nil {
		return contracts.MatchRequest{}, &contracts.ValidationError{Field: "right_rating", Message: "is required"}
	}

	return contracts.MatchRequest{
		TeamA:      p.TeamA,
		TeamB:      p.TeamB,
		FormationA: p.LeftFormation,
		FormationB: p.RightFormation,
		SquadA:     p.LeftPlaying11,
		SquadB:     p.RightPlaying11,
		RatingA:    *p.LeftRating,
		RatingB:    *p.RightRating,
	}, nil
}

// Predict returns {"winner": ...}; with ?explain=true the full vote is returned
// POST /predict, POST /api/predict
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var body PredictRequest
	if err := decodeJSON(w, r, &body); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeMalformedRequest})
		return
	}

	req, err := body.ToMatchRequest()
	if err != nil {
		h.respondPredictError(w, err)
		return
	}

	decision, err := h.predictor.Predict(r.Context(), req)
	if err != nil {
		h.respondPredictError(w, err)
		return
	}

	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain {
		respondJSON(w, http.StatusOK, decision)
		return
	}
	respondJSON(w, http.StatusOK, decision.PredictionResult)
}

func (h *PredictHandler) respondPredictError(w http.ResponseWriter, err error) {
	var verr *contracts.ValidationError
	var serr *contracts.SignalError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: verr.Error(),
			Code:  CodeMalformedRequest,
			Field: verr.Field,
		})
	case errors.As(err, &serr):
		h.logger.WithError(err).WithField("signal", string(serr.Signal)).Error("Prediction aborted")
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "prediction failed: " + string(serr.Signal) + " signal unavailable",
			Code:   CodeSignalFailure,
			Signal: string(serr.Signal),
		})
	default:
		h.logger.WithError(err).Error("Prediction failed")
		respondError(w, http.StatusInternalServerError, "prediction failed")
	}
}
