package contracts

import "strings"

// DrawLabel is the winner value reported when neither team is favored
const DrawLabel = "Draw"

// Squad is a sparse 0/1 indicator set over the squad model's feature vocabulary.
// Keys the model does not know are ignored; missing keys count as 0.
type Squad map[string]int

// Value returns the indicator for key (0 when absent)
func (s Squad) Value(key string) int {
	return s[key]
}

// MatchRequest is the input to one prediction
// ⭐ SSOT: every prediction surface (HTTP, CLI, saved analyses) builds this struct
type MatchRequest struct {
	TeamA      string  `json:"team_a" validate:"notblank"`
	TeamB      string  `json:"team_b" validate:"notblank"`
	FormationA string  `json:"formation_a"`
	FormationB string  `json:"formation_b"`
	SquadA     Squad   `json:"squad_a" validate:"omitempty,dive,oneof=0 1"`
	SquadB     Squad   `json:"squad_b" validate:"omitempty,dive,oneof=0 1"`
	RatingA    float64 `json:"rating_a" validate:"finite"`
	RatingB    float64 `json:"rating_b" validate:"finite"`
}

// Swapped returns the same match with sides exchanged
func (r MatchRequest) Swapped() MatchRequest {
	return MatchRequest{
		TeamA:      r.TeamB,
		TeamB:      r.TeamA,
		FormationA: r.FormationB,
		FormationB: r.FormationA,
		SquadA:     r.SquadB,
		SquadB:     r.SquadA,
		RatingA:    r.RatingB,
		RatingB:    r.RatingA,
	}
}

// Normalized trims team and formation names; nil squads become empty
func (r MatchRequest) Normalized() MatchRequest {
	out := r
	out.TeamA = strings.TrimSpace(r.TeamA)
	out.TeamB = strings.TrimSpace(r.TeamB)
	out.FormationA = strings.TrimSpace(r.FormationA)
	out.FormationB = strings.TrimSpace(r.FormationB)
	if out.SquadA == nil {
		out.SquadA = Squad{}
	}
	if out.SquadB == nil {
		out.SquadB = Squad{}
	}
	return out
}

// PredictionResult is the verdict: TeamA, TeamB or DrawLabel
type PredictionResult struct {
	Winner string `json:"winner"`
}
