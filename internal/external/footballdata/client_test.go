package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/matchday/pkg/httputil"
	"github.com/wonny/matchday/pkg/logger"
)

const standingsJSON = `{
  "standings": [
    {"type": "TOTAL", "table": [
      {"position": 1, "team": {"id": 57, "name": "Arsenal FC", "shortName": "Arsenal", "crest": "a.png"},
       "playedGames": 38, "won": 28, "draw": 5, "lost": 5, "points": 89,
       "goalsFor": 91, "goalsAgainst": 29, "goalDifference": 62},
      {"position": 2, "team": {"id": 64, "name": "Liverpool FC", "shortName": ""},
       "playedGames": 38, "won": 24, "draw": 10, "lost": 4, "points": 82,
       "goalsFor": 86, "goalsAgainst": 41, "goalDifference": 45}
    ]},
    {"type": "HOME", "table": [
      {"position": 1, "team": {"id": 99, "name": "Home Only"}}
    ]}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.Nop()
	hc := httputil.New(log).DisableRetry().WithHeader("X-Auth-Token", "secret")
	return NewClient(hc, srv.URL+"/", "secret", log)
}

func TestClient_Standings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions/PL/standings", r.URL.Path)
		assert.Equal(t, "2023", r.URL.Query().Get("season"))
		assert.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		_, _ = w.Write([]byte(standingsJSON))
	})

	rows, err := c.Standings(context.Background(), "PL", 2023)
	require.NoError(t, err)
	require.Len(t, rows, 2, "only the TOTAL table")

	assert.Equal(t, StandingRow{
		Rank: 1, TeamID: 57, TeamName: "Arsenal", Crest: "a.png",
		Played: 38, Wins: 28, Draws: 5, Losses: 5,
		GoalsFor: 91, GoalsAgainst: 29, GoalDifference: 62, Points: 89,
	}, rows[0])
	assert.Equal(t, "Liverpool FC", rows[1].TeamName, "falls back to full name")
}

func TestClient_Leagues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions", r.URL.Path)
		_, _ = w.Write([]byte(`{"competitions": [
			{"code": "PL", "name": "Premier League", "area": {"name": "England"}},
			{"code": "", "name": "Unnamed Cup"}
		]}`))
	})

	leagues, err := c.Leagues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []League{{ID: "PL", Name: "Premier League", Area: "England"}}, leagues)
}

func TestClient_Fixtures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/57/matches", r.URL.Path)
		_, _ = w.Write([]byte(`{"matches": [
			{"utcDate": "2024-08-17T14:00:00Z", "status": "TIMED", "competition": {"name": "Premier League"},
			 "homeTeam": {"id": 57, "name": "Arsenal FC"}, "awayTeam": {"id": 76, "name": "Wolves"}},
			{"utcDate": "2024-08-24T16:30:00Z", "status": "SCHEDULED", "competition": {"name": "Premier League"},
			 "homeTeam": {"id": 63, "name": "Aston Villa"}, "awayTeam": {"id": 57, "name": "Arsenal FC"}}
		]}`))
	})

	fixtures, err := c.Fixtures(context.Background(), 57)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.True(t, fixtures[0].Home)
	assert.Equal(t, "Wolves", fixtures[0].Opponent)
	assert.False(t, fixtures[1].Home)
	assert.Equal(t, "Aston Villa", fixtures[1].Opponent)
}

func TestClient_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "restricted"}`))
	})

	_, err := c.Standings(context.Background(), "CL", 0)
	var serr *httputil.StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusForbidden, serr.StatusCode)
}

func TestClient_NoToken(t *testing.T) {
	c := NewClient(httputil.New(logger.Nop()), "http://unused", "", logger.Nop())

	_, err := c.Leagues(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}
