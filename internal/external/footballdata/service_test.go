package footballdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	standingsCalls int
	teams          map[string][]Team
	failComp       string
}

func (f *fakeProvider) Leagues(ctx context.Context) ([]League, error) {
	return []League{{ID: "PL", Name: "Premier League"}}, nil
}

func (f *fakeProvider) Standings(ctx context.Context, competition string, season int) ([]StandingRow, error) {
	f.standingsCalls++
	if competition == f.failComp {
		return nil, errors.New("upstream 503")
	}
	return []StandingRow{{Rank: 1, TeamName: competition}}, nil
}

func (f *fakeProvider) Teams(ctx context.Context, competition string) ([]Team, error) {
	return f.teams[competition], nil
}

func (f *fakeProvider) Fixtures(ctx context.Context, teamID int) ([]Fixture, error) {
	return []Fixture{{Date: "2024-08-17", Opponent: "Wolves", Competition: "Premier League"}}, nil
}

func TestService_StandingsCached(t *testing.T) {
	p := &fakeProvider{}
	s := NewService(p, []string{"PL"}, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rows, err := s.Standings(ctx, " pl ", 0)
		require.NoError(t, err)
		assert.Equal(t, "PL", rows[0].TeamName, "competition code normalized")
	}
	assert.Equal(t, 1, p.standingsCalls)

	_, err := s.Standings(ctx, "PL", 2022)
	require.NoError(t, err)
	assert.Equal(t, 2, p.standingsCalls, "seasons are cached separately")
}

func TestService_RefreshStandings(t *testing.T) {
	p := &fakeProvider{failComp: "SA"}
	s := NewService(p, []string{"PL", "SA", "BL1"}, time.Hour)

	n, err := s.RefreshStandings(context.Background())
	assert.Equal(t, 2, n)
	assert.Error(t, err)
}

func TestService_Schedule(t *testing.T) {
	p := &fakeProvider{teams: map[string][]Team{
		"PL": {{ID: 57, Name: "Arsenal FC", ShortName: "Arsenal", TLA: "ARS"}},
		"PD": {{ID: 81, Name: "FC Barcelona", ShortName: "Barça", TLA: "FCB"}},
	}}
	s := NewService(p, []string{"PL", "PD"}, time.Hour)
	ctx := context.Background()

	for _, name := range []string{"arsenal", "ARS", "Arsenal FC", "fcb"} {
		fixtures, err := s.Schedule(ctx, name)
		require.NoError(t, err, name)
		assert.Len(t, fixtures, 1)
	}

	_, err := s.Schedule(ctx, "Atlantis")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
