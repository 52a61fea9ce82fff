package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/matchday/pkg/database"
	"github.com/wonny/matchday/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity of every backing store",
	Long: `Ping the database and redis and report which optional features are enabled.

Example:
  go run ./cmd/matchday status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	PrintDoubleSeparator()
	fmt.Printf("  matchday status (%s)\n", cfg.Env)
	PrintSeparator()

	// 1. Database
	db, err := database.New(ctx, cfg.Database)
	switch {
	case errors.Is(err, database.ErrNotConfigured):
		PrintWarning("Database: not configured (catalog and analyses disabled)")
	case err != nil:
		PrintFailure(fmt.Sprintf("Database: %v", err))
	default:
		health, err := db.HealthCheck(ctx)
		if err != nil {
			PrintFailure(fmt.Sprintf("Database: %v", err))
		} else {
			PrintSuccess(fmt.Sprintf("Database: %s (%d/%d conns)", health.ResponseTime, health.TotalConns, health.MaxConns))
		}
		db.Close()
	}

	// 2. Redis
	rc, err := redis.New(ctx, cfg.Redis)
	switch {
	case err != nil:
		PrintFailure(fmt.Sprintf("Redis: %v", err))
	case !rc.Enabled():
		PrintWarning("Redis: disabled (in-process cache only)")
	default:
		if err := rc.Ping(ctx); err != nil {
			PrintFailure(fmt.Sprintf("Redis: %v", err))
		} else {
			PrintSuccess(fmt.Sprintf("Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port))
		}
	}
	if rc != nil {
		_ = rc.Close()
	}

	// 3. External sources
	if cfg.FootballData.Token == "" {
		PrintWarning("football-data.org: no token (leagues and schedules disabled)")
	} else {
		PrintSuccess(fmt.Sprintf("football-data.org: %d competitions", len(cfg.FootballData.Competitions)))
	}
	if cfg.News.URL == "" {
		PrintWarning("News: no URL")
	} else {
		PrintSuccess(fmt.Sprintf("News: %s", cfg.News.URL))
	}

	PrintSeparator()
	fmt.Printf("  Artifacts : %s\n", cfg.Artifacts.Dir)
	fmt.Printf("  Formation : %s\n", cfg.Artifacts.FormationSrc)
	PrintDoubleSeparator()
	return nil
}
