package signals

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/matchday/internal/contracts"
)

// History votes for the side the head-to-head classifier names as winner
type History struct {
	clf contracts.HistoryClassifier
	log zerolog.Logger
}

// NewHistory creates the head-to-head signal
func NewHistory(clf contracts.HistoryClassifier, log zerolog.Logger) *History {
	return &History{
		clf: clf,
		log: log.With().Str("component", "signals.history").Logger(),
	}
}

// Evaluate predicts the fixture winner. Unknown teams are neutral.
func (h *History) Evaluate(teamA, teamB string) (Result, error) {
	a, okA := h.clf.EncodeTeam(teamA)
	b, okB := h.clf.EncodeTeam(teamB)
	if !okA || !okB {
		unknown := teamA
		if okA {
			unknown = teamB
		}
		ev := h.log.Info().Str("team", unknown)
		if s, ok := h.clf.(contracts.TeamSuggester); ok {
			ev = ev.Str("closest", s.ClosestTeam(unknown))
		}
		ev.Msg("team not in history vocabulary")
		return neutral(fmt.Sprintf("%s: %q", contracts.ErrUnknownTeam, unknown)), nil
	}

	label, err := h.clf.Predict([]float64{float64(a), float64(b)})
	if err != nil {
		return Result{}, failed(contracts.SignalHistory, err)
	}

	switch label {
	case teamA:
		return Result{Outcome: contracts.FavorTeamA, Detail: "history favors " + teamA}, nil
	case teamB:
		return Result{Outcome: contracts.FavorTeamB, Detail: "history favors " + teamB}, nil
	default:
		return neutral("history label " + label), nil
	}
}
