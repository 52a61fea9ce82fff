package footballdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/matchday/internal/cache"
)

// ErrTeamNotFound is returned when no configured competition has the team
var ErrTeamNotFound = errors.New("team not found in configured competitions")

// Provider is the subset of Client the service uses
type Provider interface {
	Leagues(ctx context.Context) ([]League, error)
	Standings(ctx context.Context, competition string, season int) ([]StandingRow, error)
	Teams(ctx context.Context, competition string) ([]Team, error)
	Fixtures(ctx context.Context, teamID int) ([]Fixture, error)
}

// Service caches provider responses. The free tier allows 10 requests a minute,
// so every read is served from cache when possible.
type Service struct {
	provider     Provider
	competitions []string

	leagues   *cache.Cache[[]League]
	standings *cache.Cache[[]StandingRow]
	teams     *cache.Cache[[]Team]
	fixtures  *cache.Cache[[]Fixture]
}

// NewService creates a caching service. competitions are searched, in order, when resolving a team name.
func NewService(provider Provider, competitions []string, ttl time.Duration, opts ...cache.Option) *Service {
	return &Service{
		provider:     provider,
		competitions: competitions,
		leagues:      cache.New[[]League]("leagues", ttl, opts...),
		standings:    cache.New[[]StandingRow]("standings", ttl, opts...),
		teams:        cache.New[[]Team]("competition_teams", 24*time.Hour, opts...),
		fixtures:     cache.New[[]Fixture]("fixtures", ttl, opts...),
	}
}

// Leagues lists available competitions
func (s *Service) Leagues(ctx context.Context) ([]League, error) {
	return s.leagues.GetOrLoad(ctx, "all", s.provider.Leagues)
}

// Standings returns a competition table for a season (0 = current)
func (s *Service) Standings(ctx context.Context, competition string, season int) ([]StandingRow, error) {
	competition = strings.ToUpper(strings.TrimSpace(competition))
	key := fmt.Sprintf("%s:%d", competition, season)
	return s.standings.GetOrLoad(ctx, key, func(ctx context.Context) ([]StandingRow, error) {
		return s.provider.Standings(ctx, competition, season)
	})
}

// RefreshStandings reloads the current-season tables of every configured competition
func (s *Service) RefreshStandings(ctx context.Context) (int, error) {
	var errs []error
	refreshed := 0
	for _, comp := range s.competitions {
		_, err := s.standings.Refresh(ctx, fmt.Sprintf("%s:%d", comp, 0), func(ctx context.Context) ([]StandingRow, error) {
			return s.provider.Standings(ctx, comp, 0)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}

// Schedule returns the upcoming fixtures of a team given by name, short name or TLA
func (s *Service) Schedule(ctx context.Context, team string) ([]Fixture, error) {
	t, err := s.resolveTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	return s.fixtures.GetOrLoad(ctx, fmt.Sprintf("%d", t.ID), func(ctx context.Context) ([]Fixture, error) {
		return s.provider.Fixtures(ctx, t.ID)
	})
}

func (s *Service) resolveTeam(ctx context.Context, name string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, ErrTeamNotFound
	}

	for _, comp := range s.competitions {
		teams, err := s.teams.GetOrLoad(ctx, comp, func(ctx context.Context) ([]Team, error) {
			return s.provider.Teams(ctx, comp)
		})
		if err != nil {
			return Team{}, err
		}
		for _, t := range teams {
			if matchesTeam(t, name) {
				return t, nil
			}
		}
	}
	return Team{}, fmt.Errorf("%s: %w", name, ErrTeamNotFound)
}

func matchesTeam(t Team, name string) bool {
	return strings.EqualFold(t.Name, name) ||
		strings.EqualFold(t.ShortName, name) ||
		strings.EqualFold(t.TLA, name)
}
