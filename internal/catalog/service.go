// Package catalog serves team, roster and club data.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/matchday/internal/cache"
	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/rating"
)

// Store is the persistence the service needs
type Store interface {
	ListTeams(ctx context.Context) ([]string, error)
	GetLogo(ctx context.Context, team string) (*string, error)
	ListPlayers(ctx context.Context, team string) ([]rating.Player, error)
	GetClubMetrics(ctx context.Context, team string) (json.RawMessage, error)
	GetClubHistory(ctx context.Context, team string) (json.RawMessage, error)
	CreateCustomTeam(ctx context.Context, team CustomTeam) error
}

const teamsKey = "all"

// Service wraps the store with caching and validation
type Service struct {
	store    Store
	teams    *cache.Cache[[]string]
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a catalog service. teamsTTL bounds staleness of the team list.
func NewService(store Store, teamsTTL time.Duration, log zerolog.Logger, opts ...cache.Option) *Service {
	return &Service{
		store:    store,
		teams:    cache.New[[]string]("teams", teamsTTL, opts...),
		validate: contracts.NewValidator(),
		log:      log.With().Str("component", "catalog").Logger(),
	}
}

// Teams returns all team names
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	return s.teams.GetOrLoad(ctx, teamsKey, s.store.ListTeams)
}

// RefreshTeams reloads the cached team list
func (s *Service) RefreshTeams(ctx context.Context) (int, error) {
	teams, err := s.teams.Refresh(ctx, teamsKey, s.store.ListTeams)
	return len(teams), err
}

// Logo returns the team's logo URL or nil
func (s *Service) Logo(ctx context.Context, team string) (*string, error) {
	return s.store.GetLogo(ctx, team)
}

// Players returns the roster of a team
func (s *Service) Players(ctx context.Context, team string) ([]rating.Player, error) {
	return s.store.ListPlayers(ctx, team)
}

// ClubMetrics returns the metrics document of a team
func (s *Service) ClubMetrics(ctx context.Context, team string) (json.RawMessage, error) {
	return s.store.GetClubMetrics(ctx, team)
}

// ClubHistory returns the history document of a team
func (s *Service) ClubHistory(ctx context.Context, team string) (json.RawMessage, error) {
	return s.store.GetClubHistory(ctx, team)
}

// Profile loads logo, roster, metrics and history concurrently
func (s *Service) Profile(ctx context.Context, team string) (*Profile, error) {
	p := &Profile{Team: team}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logo, err := s.store.GetLogo(gctx, team)
		p.Logo = logo
		return err
	})
	g.Go(func() error {
		players, err := s.store.ListPlayers(gctx, team)
		p.Players = players
		return err
	})
	g.Go(func() error {
		metrics, err := s.store.GetClubMetrics(gctx, team)
		p.Metrics = metrics
		return err
	})
	g.Go(func() error {
		history, err := s.store.GetClubHistory(gctx, team)
		p.History = history
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", team, err)
	}

	if p.Logo == nil && len(p.Players) == 0 {
		return nil, fmt.Errorf("team %q: %w", team, ErrNotFound)
	}
	return p, nil
}

// CreateCustomTeam validates and stores a user-defined team
func (s *Service) CreateCustomTeam(ctx context.Context, team CustomTeam) error {
	team.Name = strings.TrimSpace(team.Name)
	if err := s.validate.StructCtx(ctx, team); err != nil {
		return &ValidationError{Err: err}
	}

	if err := s.store.CreateCustomTeam(ctx, team); err != nil {
		return err
	}

	if err := s.teams.Invalidate(ctx, teamsKey); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate team cache")
	}
	s.log.Info().
		Str("team", team.Name).
		Int("players", len(team.Players)).
		Msg("custom team created")
	return nil
}

// ValidationError wraps a rejected custom team
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid team: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
