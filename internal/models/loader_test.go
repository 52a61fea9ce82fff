package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/matchday/internal/contracts"
)

const testBundle = "testdata/artifacts"

func TestLoadBundle(t *testing.T) {
	bundle, err := LoadBundle(testBundle)
	require.NoError(t, err)

	assert.Equal(t, []string{"Arsenal", "Barcelona", "Chelsea", "Liverpool"}, bundle.History.Teams())
	assert.Equal(t, []string{"Team_enc", "Saka", "Rice", "Salah", "Van_Dijk"}, bundle.Strength.FeatureColumns())
}

func TestHistoryModel_PredictTeams(t *testing.T) {
	bundle, err := LoadBundle(testBundle)
	require.NoError(t, err)

	tests := []struct {
		teamA, teamB string
		want         string
	}{
		{"Arsenal", "Liverpool", "Arsenal"},
		{"Barcelona", "Chelsea", "Draw"},
		{"Barcelona", "Liverpool", "Liverpool"},
		{"Chelsea", "Liverpool", "Liverpool"},
	}

	for _, tt := range tests {
		t.Run(tt.teamA+"_vs_"+tt.teamB, func(t *testing.T) {
			got, err := bundle.History.PredictTeams(tt.teamA, tt.teamB)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = bundle.History.PredictTeams("Atlantis FC", "Arsenal")
	assert.ErrorIs(t, err, contracts.ErrUnknownTeam)
}

func TestStrengthModel_Predict(t *testing.T) {
	bundle, err := LoadBundle(testBundle)
	require.NoError(t, err)

	tests := []struct {
		name       string
		saka, sala float64
		want       string
	}{
		{"both stars", 1, 1, "Win"},
		{"tie resolves to first class", 1, 0, "Draw"},
		{"no stars", 0, 0, "Draw"},
		{"salah only", 0, 1, "Win"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bundle.Strength.Predict([]float64{0, tt.saka, 0, tt.sala, 0})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrengthModel_ColumnsReturnedAsCopy(t *testing.T) {
	bundle, err := LoadBundle(testBundle)
	require.NoError(t, err)

	cols := bundle.Strength.FeatureColumns()
	cols[0] = "mutated"
	assert.Equal(t, "Team_enc", bundle.Strength.FeatureColumns()[0])
}

func TestLoadBundle_MissingFile(t *testing.T) {
	_, err := LoadBundle(t.TempDir())
	assert.Error(t, err)
}

func TestLoadForest_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"n_features": 1, "n_classes": 2, "trees": []}`), 0o644))

	_, err := LoadForest(path)
	assert.Error(t, err)
}

func TestNewStrengthModel_ColumnMismatch(t *testing.T) {
	forest := &Forest{NFeatures: 2, NClasses: 1, Trees: []Tree{{
		Feature: []int{-2}, Threshold: []float64{-2}, ChildrenLeft: []int{-1}, ChildrenRight: []int{-1}, Value: [][]float64{{1}},
	}}}
	results, _ := NewLabelEncoder([]string{"Win"})
	teams, _ := NewLabelEncoder([]string{"Arsenal"})

	_, err := NewStrengthModel(forest, teams, results, []string{"Team_enc"})
	assert.Error(t, err)

	_, err = NewStrengthModel(forest, teams, results, []string{"Team_enc", "Team_enc"})
	assert.Error(t, err)
}
