package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/matchday/internal/analysis"
	"github.com/wonny/matchday/internal/cache"
	"github.com/wonny/matchday/internal/catalog"
	"github.com/wonny/matchday/internal/external/footballdata"
	"github.com/wonny/matchday/internal/external/news"
	"github.com/wonny/matchday/internal/formation"
	"github.com/wonny/matchday/internal/models"
	"github.com/wonny/matchday/internal/prediction"
	"github.com/wonny/matchday/internal/strategyconfig"
	"github.com/wonny/matchday/pkg/config"
	"github.com/wonny/matchday/pkg/database"
	"github.com/wonny/matchday/pkg/httputil"
	"github.com/wonny/matchday/pkg/logger"
	"github.com/wonny/matchday/pkg/metrics"
	"github.com/wonny/matchday/pkg/redis"
)

// app holds everything the commands wire together
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	metrics  *metrics.Registry
	db       *database.DB // nil without DATABASE_URL
	redis    *redis.Client
	strategy *strategyconfig.Config

	prediction *prediction.Service
	catalog    *catalog.Service  // nil without a database
	analyses   *analysis.Service // nil without a database
	leagues    *footballdata.Service
	news       *news.Service
}

// loadConfig reads the environment and applies the global flag overrides
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if artifactsDir != "" {
		cfg.Artifacts.Dir = artifactsDir
	}
	if strategyPath != "" {
		cfg.Artifacts.StrategyPath = strategyPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}

// newApp connects optional stores and builds every service
func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if cfg.MetricsEnabled {
		a.metrics = metrics.New()
	}

	// 1. Optional database
	db, err := database.New(ctx, cfg.Database)
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		log.Warn("DATABASE_URL not set: catalog and saved analyses are disabled")
	case err != nil:
		return nil, fmt.Errorf("connect to database: %w", err)
	default:
		a.db = db
		log.Info("Connected to database")
	}

	// 2. Optional shared cache tier
	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = rc
	cacheOpts := []cache.Option{cache.WithMetrics(a.metrics)}
	if rc.Enabled() {
		cacheOpts = append(cacheOpts, cache.WithRemote(redis.NewCache(rc, "matchday")))
		log.Info("Connected to redis")
	}

	// 3. Prediction inputs, loaded once
	pred, strategy, err := buildPrediction(ctx, cfg, a.db, a.metrics, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.prediction = pred
	a.strategy = strategy

	// 4. Stores
	if a.db != nil {
		a.catalog = catalog.NewService(catalog.NewRepository(a.db.Pool), cfg.Cache.TeamsTTL, log.Zerolog(), cacheOpts...)
		a.analyses = analysis.NewService(analysis.NewRepository(a.db.Pool), a.prediction, log.Zerolog())
	}

	// 5. External sources
	fd := footballdata.NewClient(
		footballdata.NewHTTPClient(cfg.FootballData.Token, cfg.FootballData.RequestsPerMin, log),
		cfg.FootballData.BaseURL, cfg.FootballData.Token, log,
	)
	if fd.Configured() {
		a.leagues = footballdata.NewService(fd, cfg.FootballData.Competitions, cfg.Cache.StandingsTTL, cacheOpts...)
	} else {
		log.Warn("FOOTBALL_DATA_TOKEN not set: leagues and schedules are disabled")
	}

	if cfg.News.URL != "" {
		scraper := news.NewScraper(httputil.New(log).WithHeader("User-Agent", "matchday/1.0"), cfg.News, log)
		a.news = news.NewService(scraper, cfg.Cache.NewsTTL, cacheOpts...)
	}

	return a, nil
}

// buildPrediction loads artifacts, the formation table and the strategy
func buildPrediction(ctx context.Context, cfg *config.Config, db *database.DB, m *metrics.Registry, log *logger.Logger) (*prediction.Service, *strategyconfig.Config, error) {
	strategy, err := strategyconfig.LoadOrDefault(cfg.Artifacts.StrategyPath)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range strategyconfig.Warn(strategy) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	bundle, err := models.LoadBundle(cfg.Artifacts.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load artifacts: %w", err)
	}

	table, err := loadFormationTable(ctx, cfg, db)
	if err != nil {
		return nil, nil, err
	}

	svc, err := prediction.NewService(prediction.Dependencies{
		History:    bundle.History,
		Squad:      bundle.Strength,
		Formations: table,
		Strategy:   strategy,
		Metrics:    m,
		Logger:     log.Zerolog(),
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(map[string]interface{}{
		"strategy_id":    strategy.Meta.StrategyID,
		"strategy_hash":  svc.StrategyHash(),
		"history_teams":  len(bundle.History.Teams()),
		"squad_features": len(bundle.Strength.FeatureColumns()),
		"formation_rows": table.Len(),
	}).Info("Prediction service ready")

	return svc, strategy, nil
}

func loadFormationTable(ctx context.Context, cfg *config.Config, db *database.DB) (*formation.Table, error) {
	if cfg.Artifacts.FormationSrc == "db" {
		if db == nil {
			return nil, database.ErrNotConfigured
		}
		table, err := formation.NewRepository(db.Pool).LoadTable(ctx)
		if err != nil {
			return nil, fmt.Errorf("load formation table: %w", err)
		}
		return table, nil
	}

	table, err := formation.LoadCSV(cfg.Artifacts.FormationCSV)
	if err != nil {
		return nil, fmt.Errorf("load formation table: %w", err)
	}
	return table, nil
}

// Close releases connections
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.db.Close()
}

// openFormationDB connects only when the formation table lives in the database
func openFormationDB(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	if cfg.Artifacts.FormationSrc != "db" {
		return nil, nil
	}
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
