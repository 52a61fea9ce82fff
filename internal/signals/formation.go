package signals

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/formation"
)

// Formation compares the two sides' formation strength scores
type Formation struct {
	table  contracts.FormationTable
	coeffs formation.Coefficients
	log    zerolog.Logger
}

// NewFormation creates the formation signal
func NewFormation(table contracts.FormationTable, coeffs formation.Coefficients, log zerolog.Logger) *Formation {
	return &Formation{
		table:  table,
		coeffs: coeffs,
		log:    log.With().Str("component", "signals.formation").Logger(),
	}
}

// Score returns the formation score for a team, 0.0 when no row exists
func (f *Formation) Score(team, form string) float64 {
	row, ok := f.table.Lookup(team, form)
	if !ok {
		f.log.Info().
			Err(contracts.ErrUnknownFormation).
			Str("team", team).
			Str("formation", form).
			Msg("formation not found")
		return 0.0
	}
	return formation.Score(row, f.coeffs)
}

// Evaluate favors the side with the higher score; equal scores are neutral
func (f *Formation) Evaluate(teamA, formationA, teamB, formationB string) Result {
	a := f.Score(teamA, formationA)
	b := f.Score(teamB, formationB)
	detail := fmt.Sprintf("formation %.3f vs %.3f", a, b)

	switch {
	case a > b:
		return Result{Outcome: contracts.FavorTeamA, Detail: detail}
	case b > a:
		return Result{Outcome: contracts.FavorTeamB, Detail: detail}
	default:
		return neutral(detail)
	}
}
