package models

import (
	"fmt"
)

// HistoryModel predicts the historical winner label of (teamA, teamB).
// Features are [teamA code, teamB code].
type HistoryModel struct {
	forest  *Forest
	teams   *LabelEncoder
	winners *LabelEncoder
}

// NewHistoryModel wires a forest to its encoders
func NewHistoryModel(forest *Forest, teams, winners *LabelEncoder) (*HistoryModel, error) {
	if forest.NFeatures != 2 {
		return nil, fmt.Errorf("history model: expected 2 features, got %d", forest.NFeatures)
	}
	if err := checkClassCount(forest, winners); err != nil {
		return nil, fmt.Errorf("history model: %w", err)
	}
	return &HistoryModel{forest: forest, teams: teams, winners: winners}, nil
}

// EncodeTeam returns the team code
func (m *HistoryModel) EncodeTeam(name string) (int, bool) {
	return m.teams.Encode(name)
}

// ClosestTeam suggests a known team for an unknown name
func (m *HistoryModel) ClosestTeam(name string) string {
	return m.teams.Closest(name)
}

// Teams returns the known team names
func (m *HistoryModel) Teams() []string {
	return m.teams.Classes
}

// Predict returns the winner label for the encoded fixture
func (m *HistoryModel) Predict(features []float64) (string, error) {
	code, err := m.forest.Predict(features)
	if err != nil {
		return "", err
	}
	return m.winners.Decode(code)
}

// PredictTeams encodes both names and predicts; unknown names return contracts.ErrUnknownTeam
func (m *HistoryModel) PredictTeams(teamA, teamB string) (string, error) {
	a, err := encodeTeam(m.teams, teamA)
	if err != nil {
		return "", err
	}
	b, err := encodeTeam(m.teams, teamB)
	if err != nil {
		return "", err
	}
	return m.Predict([]float64{float64(a), float64(b)})
}

func checkClassCount(forest *Forest, labels *LabelEncoder) error {
	for i := 0; i < forest.NClasses; i++ {
		code := i
		if len(forest.Classes) != 0 {
			code = forest.Classes[i]
		}
		if code < 0 || code >= labels.Len() {
			return fmt.Errorf("forest class %d has no label (encoder has %d)", code, labels.Len())
		}
	}
	return nil
}
