// Package api exposes the prediction service and its supporting data over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/matchday/internal/api/handlers"
	"github.com/wonny/matchday/pkg/logger"
	"github.com/wonny/matchday/pkg/metrics"
)

// Handlers groups the route handlers. Nil handlers leave their routes unregistered.
type Handlers struct {
	Health   *handlers.HealthHandler
	Predict  *handlers.PredictHandler
	Catalog  *handlers.CatalogHandler
	Analysis *handlers.AnalysisHandler
	External *handlers.ExternalHandler
	Ratings  *handlers.RatingHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: routes are registered only here
func NewRouter(h Handlers, m *metrics.Registry, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	if h.Health != nil {
		r.HandleFunc("/health", h.Health.Health).Methods("GET")
	}
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	if h.Predict != nil {
		r.HandleFunc("/predict", h.Predict.Predict).Methods("POST", "OPTIONS")
		api.HandleFunc("/predict", h.Predict.Predict).Methods("POST", "OPTIONS")
	}

	if h.Catalog != nil {
		// the lineup builder calls these at the root as well
		for _, sub := range []*mux.Router{r, api} {
			sub.HandleFunc("/teams", h.Catalog.GetTeams).Methods("GET")
			sub.HandleFunc("/logo/{team}", h.Catalog.GetLogo).Methods("GET")
			sub.HandleFunc("/players/{team}", h.Catalog.GetPlayers).Methods("GET")
			sub.HandleFunc("/club-metrics/{team}", h.Catalog.GetClubMetrics).Methods("GET")
			sub.HandleFunc("/club-history/{team}", h.Catalog.GetClubHistory).Methods("GET")
		}
		api.HandleFunc("/teams/{team}/profile", h.Catalog.GetProfile).Methods("GET")
		api.HandleFunc("/custom-teams", h.Catalog.CreateCustomTeam).Methods("POST", "OPTIONS")
	}

	if h.Analysis != nil {
		api.HandleFunc("/analysis", h.Analysis.ListAnalyses).Methods("GET")
		api.HandleFunc("/analysis", h.Analysis.SaveAnalysis).Methods("POST", "OPTIONS")
		api.HandleFunc("/analysis/{id}", h.Analysis.GetAnalysis).Methods("GET")
		api.HandleFunc("/analysis/{id}", h.Analysis.DeleteAnalysis).Methods("DELETE", "OPTIONS")
	}

	if h.External != nil {
		api.HandleFunc("/leagues", h.External.GetLeagues).Methods("GET")
		api.HandleFunc("/leagues/{id}/standings", h.External.GetStandings).Methods("GET")
		api.HandleFunc("/schedule/{team}", h.External.GetSchedule).Methods("GET")
		api.HandleFunc("/news/latest", h.External.GetLatestNews).Methods("GET")
	}

	if h.Ratings != nil {
		api.HandleFunc("/ratings", h.Ratings.RateLineup).Methods("POST", "OPTIONS")
	}

	// Apply middleware
	r.Use(recoveryMiddleware(log))
	r.Use(corsMiddleware())
	r.Use(metricsMiddleware(m))
	r.Use(loggingMiddleware(log))

	return r
}
