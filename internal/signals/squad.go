package signals

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wonny/matchday/internal/contracts"
)

// Side selects which team's lineup is being scored
type Side int

const (
	Left Side = iota
	Right
)

// Name returns the signal name for the side
func (s Side) Name() contracts.SignalName {
	if s == Right {
		return contracts.SignalSquadRight
	}
	return contracts.SignalSquadLeft
}

// Squad result labels produced by the strength classifier
const (
	LabelWin  = "Win"
	LabelLoss = "Loss"
	LabelDraw = "Draw"
)

// Squad scores one side's starting eleven.
// A left-side Win favors team A; a right-side Win favors team B.
type Squad struct {
	clf             contracts.SquadClassifier
	columns         []string
	teamFeature     string
	unknownTeamCode float64
	log             zerolog.Logger
}

// SquadOptions configures the team column of the feature vector
type SquadOptions struct {
	TeamFeature     string
	UnknownTeamCode float64
}

// NewSquad creates the squad strength signal
func NewSquad(clf contracts.SquadClassifier, opts SquadOptions, log zerolog.Logger) *Squad {
	return &Squad{
		clf:             clf,
		columns:         clf.FeatureColumns(),
		teamFeature:     opts.TeamFeature,
		unknownTeamCode: opts.UnknownTeamCode,
		log:             log.With().Str("component", "signals.squad").Logger(),
	}
}

// Features builds the model input in column order. Keys the model does not
// know are ignored; missing keys are 0.
func (s *Squad) Features(team string, squad contracts.Squad) []float64 {
	row := make([]float64, len(s.columns))
	for i, col := range s.columns {
		if col == s.teamFeature {
			if code, ok := s.clf.EncodeTeam(team); ok {
				row[i] = float64(code)
			} else {
				row[i] = s.unknownTeamCode
			}
			continue
		}
		row[i] = float64(squad.Value(col))
	}
	return row
}

// Evaluate predicts Win/Loss/Draw for the side's lineup
func (s *Squad) Evaluate(side Side, team string, squad contracts.Squad) (Result, error) {
	if _, ok := s.clf.EncodeTeam(team); !ok {
		ev := s.log.Debug().Str("team", team).Str("side", string(side.Name()))
		if sg, ok := s.clf.(contracts.TeamSuggester); ok {
			ev = ev.Str("closest", sg.ClosestTeam(team))
		}
		ev.Msg("team not in squad vocabulary, using fallback code")
	}

	label, err := s.clf.Predict(s.Features(team, squad))
	if err != nil {
		return Result{}, failed(side.Name(), err)
	}

	var outcome contracts.Outcome
	switch label {
	case LabelWin:
		outcome = contracts.FavorTeamA
	case LabelLoss:
		outcome = contracts.FavorTeamB
	case LabelDraw:
		outcome = contracts.Neutral
	default:
		return Result{}, failed(side.Name(), fmt.Errorf("unexpected squad label %q", label))
	}

	if side == Right {
		outcome = outcome.Mirror()
	}
	return Result{Outcome: outcome, Detail: fmt.Sprintf("%s lineup: %s", team, label)}, nil
}
