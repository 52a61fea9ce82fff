package signals

import (
	"github.com/wonny/matchday/internal/contracts"
)

type stubHistory struct {
	teams map[string]int
	label string
	err   error
	calls int
}

func (s *stubHistory) EncodeTeam(name string) (int, bool) {
	code, ok := s.teams[name]
	return code, ok
}

func (s *stubHistory) Predict(features []float64) (string, error) {
	s.calls++
	return s.label, s.err
}

type stubSquad struct {
	teams    map[string]int
	columns  []string
	label    string
	err      error
	lastSeen []float64
}

func (s *stubSquad) EncodeTeam(name string) (int, bool) {
	code, ok := s.teams[name]
	return code, ok
}

func (s *stubSquad) FeatureColumns() []string { return s.columns }

func (s *stubSquad) Predict(features []float64) (string, error) {
	s.lastSeen = features
	return s.label, s.err
}

type stubTable map[string]contracts.FormationRow

func (t stubTable) Lookup(team, formation string) (contracts.FormationRow, bool) {
	row, ok := t[team+"|"+formation]
	return row, ok
}
