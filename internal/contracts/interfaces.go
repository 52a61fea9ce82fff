package contracts

// HistoryClassifier predicts the historical winner label of a fixture
// ⭐ SSOT: the history signal depends only on this port
type HistoryClassifier interface {
	EncodeTeam(name string) (int, bool)
	Predict(features []float64) (string, error)
}

// SquadClassifier predicts Win/Loss/Draw for one side's lineup
type SquadClassifier interface {
	EncodeTeam(name string) (int, bool)
	FeatureColumns() []string
	Predict(features []float64) (string, error)
}

// TeamSuggester offers the closest known team name for diagnostics
type TeamSuggester interface {
	ClosestTeam(name string) string
}

// FormationTable looks up formation rates by team and formation
type FormationTable interface {
	Lookup(team, formation string) (FormationRow, bool)
}
