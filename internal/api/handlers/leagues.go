package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/matchday/internal/external/footballdata"
	"github.com/wonny/matchday/internal/external/news"
	"github.com/wonny/matchday/pkg/httputil"
	"github.com/wonny/matchday/pkg/logger"
)

// Leagues is the standings and fixtures source
type Leagues interface {
	Leagues(ctx context.Context) ([]footballdata.League, error)
	Standings(ctx context.Context, competition string, season int) ([]footballdata.StandingRow, error)
	Schedule(ctx context.Context, team string) ([]footballdata.Fixture, error)
}

// News is the headline source
type News interface {
	Latest(ctx context.Context) (news.Feed, error)
}

// ExternalHandler serves data fetched from third-party sites
type ExternalHandler struct {
	leagues Leagues
	news    News
	logger  *logger.Logger
}

// NewExternalHandler creates a new handler; either source may be nil
func NewExternalHandler(leagues Leagues, feed News, log *logger.Logger) *ExternalHandler {
	return &ExternalHandler{
		leagues: leagues,
		news:    feed,
		logger:  log,
	}
}

// GetLeagues lists competitions
// GET /api/leagues
func (h *ExternalHandler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	if h.leagues == nil {
		respondError(w, http.StatusServiceUnavailable, "League data is not configured")
		return
	}

	leagues, err := h.leagues.Leagues(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err, "Failed to retrieve leagues")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"leagues": leagues})
}

// GetStandings returns a league table
// GET /api/leagues/{id}/standings?season=
func (h *ExternalHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	if h.leagues == nil {
		respondError(w, http.StatusServiceUnavailable, "League data is not configured")
		return
	}

	season := 0
	if s := r.URL.Query().Get("season"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1900 || v > 2100 {
			respondError(w, http.StatusBadRequest, "Invalid season (expected a year, e.g. 2024)")
			return
		}
		season = v
	}

	rows, err := h.leagues.Standings(r.Context(), mux.Vars(r)["id"], season)
	if err != nil {
		h.respondUpstreamError(w, err, "Failed to retrieve standings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"standings": rows})
}

// GetSchedule returns a team's upcoming fixtures
// GET /api/schedule/{team}
func (h *ExternalHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	if h.leagues == nil {
		respondDetail(w, http.StatusServiceUnavailable, "Schedule data is not configured")
		return
	}

	fixtures, err := h.leagues.Schedule(r.Context(), teamVar(r))
	if errors.Is(err, footballdata.ErrTeamNotFound) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"fixtures": []footballdata.Fixture{}})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get schedule")
		respondDetail(w, http.StatusBadGateway, "Failed to load schedule")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"fixtures": fixtures})
}

// GetLatestNews returns scraped headlines
// GET /api/news/latest
func (h *ExternalHandler) GetLatestNews(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		respondError(w, http.StatusServiceUnavailable, "News is not configured")
		return
	}

	feed, err := h.news.Latest(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err, "Failed to retrieve news")
		return
	}
	if feed.Items == nil {
		feed.Items = []news.Item{}
	}
	respondJSON(w, http.StatusOK, feed)
}

func (h *ExternalHandler) respondUpstreamError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, footballdata.ErrNoToken) {
		respondError(w, http.StatusServiceUnavailable, "League data is not configured")
		return
	}

	var serr *httputil.StatusError
	if errors.As(err, &serr) && serr.StatusCode == http.StatusNotFound {
		respondError(w, http.StatusNotFound, "Not found upstream")
		return
	}

	h.logger.WithError(err).Error(message)
	respondJSON(w, http.StatusBadGateway, ErrorResponse{Error: message, Code: CodeUnavailable})
}
