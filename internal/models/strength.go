package models

import (
	"fmt"
)

// StrengthModel predicts Win/Loss/Draw from a lineup feature vector
// laid out in Columns order.
type StrengthModel struct {
	forest  *Forest
	teams   *LabelEncoder
	results *LabelEncoder
	columns []string
}

// NewStrengthModel wires a forest to its encoders and feature columns
func NewStrengthModel(forest *Forest, teams, results *LabelEncoder, columns []string) (*StrengthModel, error) {
	if len(columns) != forest.NFeatures {
		return nil, fmt.Errorf("strength model: %d columns but forest expects %d features", len(columns), forest.NFeatures)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("strength model: duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	if err := checkClassCount(forest, results); err != nil {
		return nil, fmt.Errorf("strength model: %w", err)
	}
	return &StrengthModel{forest: forest, teams: teams, results: results, columns: columns}, nil
}

// EncodeTeam returns the team code
func (m *StrengthModel) EncodeTeam(name string) (int, bool) {
	return m.teams.Encode(name)
}

// ClosestTeam suggests a known team for an unknown name
func (m *StrengthModel) ClosestTeam(name string) string {
	return m.teams.Closest(name)
}

// FeatureColumns returns the ordered feature names
func (m *StrengthModel) FeatureColumns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// Predict returns the result label for a feature vector
func (m *StrengthModel) Predict(features []float64) (string, error) {
	code, err := m.forest.Predict(features)
	if err != nil {
		return "", err
	}
	return m.results.Decode(code)
}
