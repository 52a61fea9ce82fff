package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/wonny/matchday/internal/rating"
	"github.com/wonny/matchday/pkg/logger"
)

// Roster looks up a team's players
type Roster interface {
	Players(ctx context.Context, team string) ([]rating.Player, error)
}

// RatingHandler computes lineup ratings
type RatingHandler struct {
	roster Roster
	opts   rating.Options
	logger *logger.Logger
}

// NewRatingHandler creates a new rating handler; roster may be nil when players are always sent inline
func NewRatingHandler(roster Roster, opts rating.Options, log *logger.Logger) *RatingHandler {
	return &RatingHandler{
		roster: roster,
		opts:   opts,
		logger: log,
	}
}

// RatingRequest places players (by name) into formation slots. Slot "0" is the goalkeeper.
type RatingRequest struct {
	Team      string            `json:"team"`
	Formation string            `json:"formation"`
	Assigned  map[string]string `json:"assigned"`
	Players   []rating.Player   `json:"players"`
}

// RatingResponse is the lineup rating plus the squad indicator set for /predict
type RatingResponse struct {
	rating.Summary
	Squad   map[string]int `json:"squad"`
	Missing []string       `json:"missing"`
}

// RateLineup returns the aggregate rating of a lineup
// POST /api/ratings
func (h *RatingHandler) RateLineup(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	roles, err := rating.FormationRoles(req.Formation)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeMalformedRequest, Field: "formation"})
		return
	}

	assigned := make(map[int]string, len(req.Assigned))
	for k, name := range req.Assigned {
		slot, err := strconv.Atoi(k)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "slot " + strconv.Quote(k) + " is not a number", Code: CodeMalformedRequest, Field: "assigned"})
			return
		}
		assigned[slot] = name
	}

	roster := req.Players
	if len(roster) == 0 {
		team := strings.TrimSpace(req.Team)
		if team == "" || h.roster == nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "players or team is required", Code: CodeMalformedRequest, Field: "players"})
			return
		}
		roster, err = h.roster.Players(r.Context(), team)
		if err != nil {
			h.logger.WithError(err).Error("Failed to load roster")
			respondError(w, http.StatusInternalServerError, "Failed to retrieve players")
			return
		}
	}

	lineup, missing := rating.BuildLineup(assigned, roster, roles)
	if missing == nil {
		missing = []string{}
	}

	respondJSON(w, http.StatusOK, RatingResponse{
		Summary: rating.Summarize(lineup, h.opts),
		Squad:   lineup.Squad(),
		Missing: missing,
	})
}
