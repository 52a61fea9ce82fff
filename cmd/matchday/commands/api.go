package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/matchday/internal/api"
	"github.com/wonny/matchday/internal/api/handlers"
	"github.com/wonny/matchday/internal/rating"
)

// version is set at build time with -ldflags "-X .../commands.version=..."
var version = "dev"

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Start the REST API server.

Endpoints:
  GET    /health                          - Health check
  GET    /metrics                         - Prometheus metrics
  POST   /predict, /api/predict           - Predict a match (?explain=true for the vote)
  POST   /api/ratings                     - Rate a lineup
  GET    /teams, /api/teams               - Team names
  GET    /api/teams/{team}/profile        - Logo, roster, metrics, history
  GET    /logo/{team}, /api/logo/{team}   - Team logo
  GET    /players/{team}                  - Team roster (also under /api)
  GET    /club-metrics/{team}             - Season metrics (also under /api)
  GET    /club-history/{team}             - Club history (also under /api)
  POST   /api/custom-teams                - Create a custom team
  GET    /api/analysis                    - Saved analyses (X-User-ID)
  POST   /api/analysis                    - Save an analysis
  GET    /api/analysis/{id}               - One saved analysis
  DELETE /api/analysis/{id}               - Delete an analysis
  GET    /api/leagues                     - Competitions
  GET    /api/leagues/{id}/standings      - League table (?season=)
  GET    /api/schedule/{team}             - Upcoming fixtures
  GET    /api/news/latest                 - Headlines

Example:
  go run ./cmd/matchday api
  go run ./cmd/matchday api --port 9000 --with-scheduler`,
	RunE: runAPIServer,
}

var (
	apiPort          string
	apiWithScheduler bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().BoolVar(&apiWithScheduler, "with-scheduler", false, "also run the cache refresh jobs in this process")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 2. Build services
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// 3. Handlers
	h := api.Handlers{
		Health:  handlers.NewHealthHandler("matchday", version, healthChecks(a)),
		Predict: handlers.NewPredictHandler(a.prediction, log),
	}
	if a.catalog != nil {
		h.Catalog = handlers.NewCatalogHandler(a.catalog, log)
		h.Ratings = handlers.NewRatingHandler(a.catalog, rating.DefaultOptions(), log)
	} else {
		h.Ratings = handlers.NewRatingHandler(nil, rating.DefaultOptions(), log)
	}
	if a.analyses != nil {
		h.Analysis = handlers.NewAnalysisHandler(a.analyses, log)
	}
	h.External = handlers.NewExternalHandler(leaguesOrNil(a), newsOrNil(a), log)

	// 4. Router and server
	router := api.NewRouter(h, a.metrics, log)
	server := api.New(cfg, log, router)

	// 5. Optional in-process scheduler
	if apiWithScheduler {
		sched, err := newScheduler(a)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a failed start
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

func healthChecks(a *app) map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if a.db != nil {
		checks["database"] = func(ctx context.Context) error {
			_, err := a.db.HealthCheck(ctx)
			return err
		}
	}
	if a.redis != nil && a.redis.Enabled() {
		checks["redis"] = a.redis.Ping
	}
	return checks
}

// leaguesOrNil avoids a typed-nil interface when football-data is disabled
func leaguesOrNil(a *app) handlers.Leagues {
	if a.leagues == nil {
		return nil
	}
	return a.leagues
}

func newsOrNil(a *app) handlers.News {
	if a.news == nil {
		return nil
	}
	return a.news
}
