package signals

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/formation"
	"github.com/wonny/matchday/internal/models"
)

func TestHistory_Evaluate(t *testing.T) {
	teams := map[string]int{"Arsenal": 0, "Chelsea": 1}

	tests := []struct {
		name  string
		teamA string
		teamB string
		label string
		want  contracts.Outcome
	}{
		{"label is team A", "Arsenal", "Chelsea", "Arsenal", contracts.FavorTeamA},
		{"label is team B", "Arsenal", "Chelsea", "Chelsea", contracts.FavorTeamB},
		{"draw label", "Arsenal", "Chelsea", "Draw", contracts.Neutral},
		{"label is a third team", "Arsenal", "Chelsea", "Liverpool", contracts.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(&stubHistory{teams: teams, label: tt.label}, zerolog.Nop())
			got, err := h.Evaluate(tt.teamA, tt.teamB)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Outcome)
		})
	}
}

func TestHistory_UnknownTeamIsNeutral(t *testing.T) {
	clf := &stubHistory{teams: map[string]int{"Arsenal": 0}, label: "Arsenal"}
	h := NewHistory(clf, zerolog.Nop())

	for _, pair := range [][2]string{{"Atlantis", "Arsenal"}, {"Arsenal", "Atlantis"}} {
		got, err := h.Evaluate(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, contracts.Neutral, got.Outcome)
		assert.Contains(t, got.Detail, "Atlantis")
	}
	assert.Zero(t, clf.calls, "classifier is not consulted for unknown teams")
}

func TestHistory_ClassifierFailure(t *testing.T) {
	clf := &stubHistory{teams: map[string]int{"A": 0, "B": 1}, err: errors.New("corrupt artifact")}
	h := NewHistory(clf, zerolog.Nop())

	_, err := h.Evaluate("A", "B")

	var sigErr *contracts.SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, contracts.SignalHistory, sigErr.Signal)
}

func TestHistory_WithModelBundle(t *testing.T) {
	bundle, err := models.LoadBundle("../models/testdata/artifacts")
	require.NoError(t, err)

	h := NewHistory(bundle.History, zerolog.Nop())

	got, err := h.Evaluate("Arsenal", "Liverpool")
	require.NoError(t, err)
	assert.Equal(t, contracts.FavorTeamA, got.Outcome)

	got, err = h.Evaluate("Barcelona", "Liverpool")
	require.NoError(t, err)
	assert.Equal(t, contracts.FavorTeamB, got.Outcome)

	got, err = h.Evaluate("Barca", "Liverpool")
	require.NoError(t, err)
	assert.Equal(t, contracts.Neutral, got.Outcome)
}

func TestSquad_Features(t *testing.T) {
	clf := &stubSquad{
		teams:   map[string]int{"Arsenal": 4},
		columns: []string{"Team_enc", "Saka", "Rice"},
	}
	s := NewSquad(clf, SquadOptions{TeamFeature: "Team_enc", UnknownTeamCode: -1}, zerolog.Nop())

	got := s.Features("Arsenal", contracts.Squad{"Saka": 1, "Messi": 1})
	assert.Equal(t, []float64{4, 1, 0}, got, "unknown keys ignored, missing keys zero")

	got = s.Features("Atlantis", nil)
	assert.Equal(t, []float64{-1, 0, 0}, got)
}

func TestSquad_Evaluate(t *testing.T) {
	tests := []struct {
		name  string
		side  Side
		label string
		want  contracts.Outcome
	}{
		{"left win", Left, LabelWin, contracts.FavorTeamA},
		{"left loss", Left, LabelLoss, contracts.FavorTeamB},
		{"left draw", Left, LabelDraw, contracts.Neutral},
		{"right win is mirrored", Right, LabelWin, contracts.FavorTeamB},
		{"right loss is mirrored", Right, LabelLoss, contracts.FavorTeamA},
		{"right draw", Right, LabelDraw, contracts.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := &stubSquad{columns: []string{"Team_enc"}, label: tt.label}
			s := NewSquad(clf, SquadOptions{TeamFeature: "Team_enc"}, zerolog.Nop())

			got, err := s.Evaluate(tt.side, "Arsenal", contracts.Squad{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Outcome)
		})
	}
}

func TestSquad_UnexpectedLabel(t *testing.T) {
	clf := &stubSquad{columns: []string{"Team_enc"}, label: "Unknown team: add to dataset!"}
	s := NewSquad(clf, SquadOptions{TeamFeature: "Team_enc"}, zerolog.Nop())

	_, err := s.Evaluate(Right, "Arsenal", nil)

	var sigErr *contracts.SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, contracts.SignalSquadRight, sigErr.Signal)
}

func TestSquad_ClassifierFailure(t *testing.T) {
	clf := &stubSquad{columns: []string{"Team_enc"}, err: errors.New("boom")}
	s := NewSquad(clf, SquadOptions{TeamFeature: "Team_enc"}, zerolog.Nop())

	_, err := s.Evaluate(Left, "Arsenal", nil)

	var sigErr *contracts.SignalError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, contracts.SignalSquadLeft, sigErr.Signal)
}

func TestSquad_WithModelBundle(t *testing.T) {
	bundle, err := models.LoadBundle("../models/testdata/artifacts")
	require.NoError(t, err)

	s := NewSquad(bundle.Strength, SquadOptions{TeamFeature: "Team_enc", UnknownTeamCode: -1}, zerolog.Nop())

	got, err := s.Evaluate(Left, "Arsenal", contracts.Squad{"Saka": 1, "Salah": 1})
	require.NoError(t, err)
	assert.Equal(t, contracts.FavorTeamA, got.Outcome)

	got, err = s.Evaluate(Right, "Liverpool", contracts.Squad{"Salah": 1})
	require.NoError(t, err)
	assert.Equal(t, contracts.FavorTeamB, got.Outcome)

	got, err = s.Evaluate(Left, "Atlantis", contracts.Squad{})
	require.NoError(t, err, "unknown team uses the fallback code")
	assert.Equal(t, contracts.Neutral, got.Outcome)
}

func TestRating_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		minDelta float64
		a, b     float64
		want     contracts.Outcome
	}{
		{"A higher", 0, 80, 75, contracts.FavorTeamA},
		{"B higher", 0, 70, 75, contracts.FavorTeamB},
		{"equal", 0, 75, 75, contracts.Neutral},
		{"within min delta", 2, 76, 75, contracts.Neutral},
		{"beyond min delta", 2, 78, 75, contracts.FavorTeamA},
		{"negative min delta is absolute", -2, 74, 75, contracts.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRating(tt.minDelta).Evaluate(tt.a, tt.b).Outcome)
		})
	}
}

func TestFormation_Evaluate(t *testing.T) {
	table := stubTable{
		"Arsenal|4-3-3":   {WinningRate: 0.62, DrawRate: 0.2, LosingRate: 0.18},
		"Chelsea|3-5-2":   {WinningRate: 0.45, DrawRate: 0.3, LosingRate: 0.25},
		"Liverpool|4-3-3": {WinningRate: 0.62, DrawRate: 0.2, LosingRate: 0.18},
	}
	f := NewFormation(table, formation.DefaultCoefficients(), zerolog.Nop())

	tests := []struct {
		name         string
		teamA, formA string
		teamB, formB string
		want         contracts.Outcome
	}{
		{"A stronger", "Arsenal", "4-3-3", "Chelsea", "3-5-2", contracts.FavorTeamA},
		{"B stronger", "Chelsea", "3-5-2", "Arsenal", "4-3-3", contracts.FavorTeamB},
		{"equal scores", "Arsenal", "4-3-3", "Liverpool", "4-3-3", contracts.Neutral},
		{"both unknown", "Atlantis", "9-0-1", "Narnia", "4-4-2", contracts.Neutral},
		{"unknown side scores zero", "Atlantis", "4-3-3", "Chelsea", "3-5-2", contracts.FavorTeamB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Evaluate(tt.teamA, tt.formA, tt.teamB, tt.formB).Outcome)
		})
	}

	assert.Equal(t, 0.0, f.Score("Atlantis", "4-3-3"))
	assert.InDelta(t, 0.592, f.Score("Arsenal", "4-3-3"), 1e-9)
}

func TestFormation_ScoreLogsUnknownFormation(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormation(stubTable{}, formation.DefaultCoefficients(), zerolog.New(&buf))

	assert.Equal(t, 0.0, f.Score("Atlantis", "9-0-1"))
	assert.Contains(t, buf.String(), `"error":"unknown formation"`)
	assert.Contains(t, buf.String(), `"team":"Atlantis"`)
}
