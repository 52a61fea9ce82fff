// Package jobs holds the scheduled cache refresh jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/matchday/pkg/logger"
)

// Refresher reloads one cached data set and reports how many items it now holds
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// RefresherFunc adapts a function to Refresher
type RefresherFunc func(ctx context.Context) (int, error)

// Refresh calls f
func (f RefresherFunc) Refresh(ctx context.Context) (int, error) {
	return f(ctx)
}

// RefreshJob runs a Refresher on a cron schedule
type RefreshJob struct {
	name      string
	schedule  string
	refresher Refresher
	logger    *logger.Logger
}

// NewRefreshJob creates a refresh job
func NewRefreshJob(name, schedule string, r Refresher, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		name:      name,
		schedule:  schedule,
		refresher: r,
		logger:    log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return j.name
}

// Schedule returns the cron schedule
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh
func (j *RefreshJob) Run(ctx context.Context) error {
	n, err := j.refresher.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", j.name, err)
	}

	j.logger.WithFields(map[string]interface{}{
		"job":   j.name,
		"items": n,
	}).Info("Cache refreshed")
	return nil
}

// NewsRefresh re-scrapes headlines every 15 minutes
func NewsRefresh(r Refresher, log *logger.Logger) *RefreshJob {
	return NewRefreshJob("news_refresh", "0 */15 * * * *", r, log)
}

// StandingsRefresh reloads league tables hourly
func StandingsRefresh(r Refresher, log *logger.Logger) *RefreshJob {
	return NewRefreshJob("standings_refresh", "0 5 * * * *", r, log)
}

// TeamsRefresh reloads the team catalog every 10 minutes
func TeamsRefresh(r Refresher, log *logger.Logger) *RefreshJob {
	return NewRefreshJob("teams_refresh", "30 */10 * * * *", r, log)
}
