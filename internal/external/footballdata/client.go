// Package footballdata reads leagues, standings and fixtures from the football-data.org v4 API.
package footballdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/wonny/matchday/pkg/httputil"
	"github.com/wonny/matchday/pkg/logger"
)

// ErrNoToken is returned when no API token is configured
var ErrNoToken = errors.New("football-data token not configured")

// Client handles communication with football-data.org
// ⭐ SSOT: football-data calls are made only by this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewClient creates a client. httpClient should carry the auth header and rate limit,
// see NewHTTPClient.
func NewClient(httpClient *httputil.Client, baseURL, token string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.Component("footballdata"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// NewHTTPClient builds the rate-limited HTTP client used for the API (free tier: 10 req/min)
func NewHTTPClient(token string, perMinute int, log *logger.Logger) *httputil.Client {
	return httputil.New(log).
		WithRateLimit(perMinute, 1).
		WithHeader("X-Auth-Token", token)
}

// Configured reports whether an API token is present
func (c *Client) Configured() bool {
	return c.token != ""
}

// Leagues lists the competitions available to the token's plan
func (c *Client) Leagues(ctx context.Context) ([]League, error) {
	if !c.Configured() {
		return nil, ErrNoToken
	}

	var resp competitionsResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/competitions", &resp); err != nil {
		return nil, fmt.Errorf("fetch competitions: %w", err)
	}

	leagues := make([]League, 0, len(resp.Competitions))
	for _, comp := range resp.Competitions {
		if comp.Code == "" {
			continue
		}
		leagues = append(leagues, League{
			ID:     comp.Code,
			Name:   comp.Name,
			Area:   comp.Area.Name,
			Emblem: comp.Emblem,
		})
	}

	c.logger.WithField("count", len(leagues)).Debug("Fetched competitions")
	return leagues, nil
}

// Standings returns the TOTAL table of a competition. season is the starting year; 0 means current.
func (c *Client) Standings(ctx context.Context, competition string, season int) ([]StandingRow, error) {
	if !c.Configured() {
		return nil, ErrNoToken
	}

	endpoint := fmt.Sprintf("%s/competitions/%s/standings", c.baseURL, url.PathEscape(competition))
	if season > 0 {
		endpoint += fmt.Sprintf("?season=%d", season)
	}

	var resp standingsResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch standings %s: %w", competition, err)
	}

	rows := []StandingRow{}
	for _, st := range resp.Standings {
		if st.Type != "" && st.Type != "TOTAL" {
			continue
		}
		for _, r := range st.Table {
			name := r.Team.Name
			if r.Team.ShortName != "" {
				name = r.Team.ShortName
			}
			rows = append(rows, StandingRow{
				Rank:           r.Position,
				TeamID:         r.Team.ID,
				TeamName:       name,
				Crest:          r.Team.Crest,
				Played:         r.PlayedGames,
				Wins:           r.Won,
				Draws:          r.Draw,
				Losses:         r.Lost,
				GoalsFor:       r.GoalsFor,
				GoalsAgainst:   r.GoalsAgainst,
				GoalDifference: r.GoalDifference,
				Points:         r.Points,
			})
		}
		break
	}
	return rows, nil
}

// Teams lists the clubs of a competition's current season
func (c *Client) Teams(ctx context.Context, competition string) ([]Team, error) {
	if !c.Configured() {
		return nil, ErrNoToken
	}

	endpoint := fmt.Sprintf("%s/competitions/%s/teams", c.baseURL, url.PathEscape(competition))

	var resp teamsResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch teams %s: %w", competition, err)
	}
	return resp.Teams, nil
}

// Fixtures returns a team's scheduled matches in kickoff order
func (c *Client) Fixtures(ctx context.Context, teamID int) ([]Fixture, error) {
	if !c.Configured() {
		return nil, ErrNoToken
	}

	endpoint := fmt.Sprintf("%s/teams/%d/matches?status=SCHEDULED,TIMED", c.baseURL, teamID)

	var resp matchesResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch fixtures %d: %w", teamID, err)
	}

	fixtures := make([]Fixture, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		f := Fixture{
			Date:        m.UTCDate,
			Competition: m.Competition.Name,
			Status:      m.Status,
		}
		if m.HomeTeam.ID == teamID {
			f.Home = true
			f.Opponent = m.AwayTeam.Name
		} else {
			f.Opponent = m.HomeTeam.Name
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}
