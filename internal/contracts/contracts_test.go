package contracts

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_Class(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    VoteClass
	}{
		{FavorTeamA, WinA},
		{FavorTeamB, WinB},
		{Neutral, Draw},
		{Outcome("garbage"), Draw},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Class())
		})
	}
}

func TestOutcome_Mirror(t *testing.T) {
	assert.Equal(t, FavorTeamB, FavorTeamA.Mirror())
	assert.Equal(t, FavorTeamA, FavorTeamB.Mirror())
	assert.Equal(t, Neutral, Neutral.Mirror())
}

func TestVoteTally(t *testing.T) {
	var tally VoteTally

	tally.Add(WinA, 0.3)
	tally.Add(Draw, 0.2)
	tally.Add(WinA, 0.1)
	tally.Add(WinB, -1)

	assert.InDelta(t, 0.4, tally.Get(WinA), 1e-12)
	assert.InDelta(t, 0.0, tally.Get(WinB), 1e-12)
	assert.InDelta(t, 0.2, tally.Get(Draw), 1e-12)
	assert.InDelta(t, 0.6, tally.Total(), 1e-12)
}

func TestMatchRequest_Swapped(t *testing.T) {
	req := MatchRequest{
		TeamA: "Arsenal", TeamB: "Chelsea",
		FormationA: "4-3-3", FormationB: "4-4-2",
		SquadA: Squad{"a": 1}, SquadB: Squad{"b": 1},
		RatingA: 80, RatingB: 75,
	}

	swapped := req.Swapped()
	assert.Equal(t, "Chelsea", swapped.TeamA)
	assert.Equal(t, "4-3-3", swapped.FormationB)
	assert.Equal(t, Squad{"b": 1}, swapped.SquadA)
	assert.Equal(t, 80.0, swapped.RatingB)
	assert.Equal(t, req, swapped.Swapped())
}

func TestMatchRequest_Normalized(t *testing.T) {
	req := MatchRequest{TeamA: "  Arsenal ", TeamB: "Chelsea\n", FormationA: " 4-3-3 "}

	n := req.Normalized()
	assert.Equal(t, "Arsenal", n.TeamA)
	assert.Equal(t, "Chelsea", n.TeamB)
	assert.Equal(t, "4-3-3", n.FormationA)
	assert.NotNil(t, n.SquadA)
	assert.NotNil(t, n.SquadB)
}

func TestSquad_Value(t *testing.T) {
	s := Squad{"Saka": 1, "Odegaard": 0}
	assert.Equal(t, 1, s.Value("Saka"))
	assert.Equal(t, 0, s.Value("Odegaard"))
	assert.Equal(t, 0, s.Value("missing"))
}

func TestSignalError_Unwrap(t *testing.T) {
	cause := errors.New("model exploded")
	err := fmt.Errorf("predict: %w", &SignalError{Signal: SignalHistory, Err: cause})

	var sigErr *SignalError
	assert.True(t, errors.As(err, &sigErr))
	assert.Equal(t, SignalHistory, sigErr.Signal)
	assert.ErrorIs(t, err, cause)
}

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     MatchRequest
		wantErr string
	}{
		{"valid", MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea", RatingA: 80, RatingB: 79}, ""},
		{"blank team", MatchRequest{TeamA: "Arsenal", TeamB: " "}, "team_b"},
		{"nan rating", MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea", RatingB: math.NaN()}, "rating_b"},
		{"squad value", MatchRequest{TeamA: "Arsenal", TeamB: "Chelsea", SquadA: Squad{"Saka": 3}}, "squad_a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
