package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/matchday/internal/catalog"
	"github.com/wonny/matchday/internal/rating"
	"github.com/wonny/matchday/pkg/logger"
)

// Catalog is the team data the handlers read
type Catalog interface {
	Teams(ctx context.Context) ([]string, error)
	Profile(ctx context.Context, team string) (*catalog.Profile, error)
	Logo(ctx context.Context, team string) (*string, error)
	Players(ctx context.Context, team string) ([]rating.Player, error)
	ClubMetrics(ctx context.Context, team string) (json.RawMessage, error)
	ClubHistory(ctx context.Context, team string) (json.RawMessage, error)
	CreateCustomTeam(ctx context.Context, team catalog.CustomTeam) error
}

// CatalogHandler serves teams, rosters and club data
type CatalogHandler struct {
	catalog Catalog
	logger  *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c Catalog, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		logger:  log,
	}
}

func teamVar(r *http.Request) string {
	return strings.TrimSpace(mux.Vars(r)["team"])
}

// GetTeams returns every team name
// GET /teams, GET /api/teams
func (h *CatalogHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.catalog.Teams(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list teams")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve teams")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetProfile returns logo, roster, metrics and history in one reply
// GET /api/teams/{team}/profile
func (h *CatalogHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.catalog.Profile(r.Context(), teamVar(r))
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load team profile")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve team profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// GetLogo returns the team's logo URL or null
// GET /logo/{team}, GET /api/logo/{team}
func (h *CatalogHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	team := teamVar(r)
	logo, err := h.catalog.Logo(r.Context(), team)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get logo")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve logo")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team, "logo": logo})
}

// GetPlayers returns the team's roster
// GET /players/{team}, GET /api/players/{team}
func (h *CatalogHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	team := teamVar(r)
	players, err := h.catalog.Players(r.Context(), team)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list players")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve players")
		return
	}
	if players == nil {
		players = []rating.Player{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team, "players": players})
}

// GetClubMetrics returns the team's season metrics
// GET /club-metrics/{team}, GET /api/club-metrics/{team}
func (h *CatalogHandler) GetClubMetrics(w http.ResponseWriter, r *http.Request) {
	team := teamVar(r)
	metrics, err := h.catalog.ClubMetrics(r.Context(), team)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get club metrics")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve club metrics")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team, "metrics": metrics})
}

// GetClubHistory returns the team's history; unknown teams get an empty list
// GET /club-history/{team}, GET /api/club-history/{team}
func (h *CatalogHandler) GetClubHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.catalog.ClubHistory(r.Context(), teamVar(r))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get club history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve club history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

// CreateCustomTeam stores a user-defined team
// POST /api/custom-teams
func (h *CatalogHandler) CreateCustomTeam(w http.ResponseWriter, r *http.Request) {
	var team catalog.CustomTeam
	if err := decodeJSON(w, r, &team); err != nil {
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.catalog.CreateCustomTeam(r.Context(), team)
	var verr *catalog.ValidationError
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"name":    strings.TrimSpace(team.Name),
			"players": len(team.Players),
		})
	case errors.As(err, &verr):
		respondDetail(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, catalog.ErrAlreadyExists):
		respondDetail(w, http.StatusConflict, "A team with this name already exists")
	default:
		h.logger.WithError(err).Error("Failed to create custom team")
		respondDetail(w, http.StatusInternalServerError, "Failed to create team")
	}
}
