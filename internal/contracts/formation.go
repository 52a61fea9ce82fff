package contracts

// FormationRow is one (team, formation) record of historical rates
type FormationRow struct {
	Team        string  `json:"team"`
	Formation   string  `json:"formation"`
	WinningRate float64 `json:"winning_rate"`
	DrawRate    float64 `json:"draw_rate"`
	LosingRate  float64 `json:"losing_rate"`
}
