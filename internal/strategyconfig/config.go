package strategyconfig

import (
	"time"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/formation"
)

// Config is the full ensemble strategy: weight table plus signal parameters
type Config struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Ensemble Ensemble `yaml:"ensemble" json:"ensemble"`
	Signals  Signals  `yaml:"signals" json:"signals"`
}

// Meta identifies the strategy
type Meta struct {
	StrategyID  string `yaml:"strategy_id" json:"strategy_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Ensemble holds the voting parameters
type Ensemble struct {
	Weights    Weights `yaml:"weights" json:"weights"`
	TieEpsilon float64 `yaml:"tie_epsilon" json:"tie_epsilon"` // classes within epsilon of the max are tied
}

// Weights is the per-signal vote weight. Zero disables a signal.
type Weights struct {
	History    float64 `yaml:"history" json:"history"`
	SquadLeft  float64 `yaml:"squad_left" json:"squad_left"`
	SquadRight float64 `yaml:"squad_right" json:"squad_right"`
	Rating     float64 `yaml:"rating" json:"rating"`
	Formation  float64 `yaml:"formation" json:"formation"`
}

// Get returns the weight for a signal (0 for unknown names)
func (w Weights) Get(name contracts.SignalName) float64 {
	switch name {
	case contracts.SignalHistory:
		return w.History
	case contracts.SignalSquadLeft:
		return w.SquadLeft
	case contracts.SignalSquadRight:
		return w.SquadRight
	case contracts.SignalRating:
		return w.Rating
	case contracts.SignalFormation:
		return w.Formation
	default:
		return 0
	}
}

// Sum returns the total weight
func (w Weights) Sum() float64 {
	return w.History + w.SquadLeft + w.SquadRight + w.Rating + w.Formation
}

// Slice returns the weights in signal evaluation order
func (w Weights) Slice() []float64 {
	out := make([]float64, 0, len(contracts.SignalOrder))
	for _, name := range contracts.SignalOrder {
		out = append(out, w.Get(name))
	}
	return out
}

// Signals holds per-signal parameters
type Signals struct {
	Squad     SquadSignal     `yaml:"squad_strength" json:"squad_strength"`
	Rating    RatingSignal    `yaml:"rating" json:"rating"`
	Formation FormationSignal `yaml:"formation" json:"formation"`
}

// SquadSignal configures how the team is placed in the squad feature vector
type SquadSignal struct {
	TeamFeature     string  `yaml:"team_feature" json:"team_feature"`           // column receiving the encoded team
	UnknownTeamCode float64 `yaml:"unknown_team_code" json:"unknown_team_code"` // value used when the team is not encoded
}

// RatingSignal configures the rating delta comparison
type RatingSignal struct {
	MinDelta float64 `yaml:"min_delta" json:"min_delta"` // |delta| <= min_delta is neutral
}

// FormationSignal configures the formation score
type FormationSignal struct {
	Coefficients formation.Coefficients `yaml:"coefficients" json:"coefficients"`
}

// Default returns the built-in strategy used when no YAML is configured
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID:  "matchday_ensemble_v1",
			Version:     "1.0.0",
			Description: "history, squad strength, rating and formation vote",
		},
		Ensemble: Ensemble{
			Weights: Weights{
				History:    0.30,
				SquadLeft:  0.20,
				SquadRight: 0.20,
				Rating:     0.15,
				Formation:  0.15,
			},
			TieEpsilon: 1e-9,
		},
		Signals: Signals{
			Squad: SquadSignal{
				TeamFeature:     "Team_enc",
				UnknownTeamCode: -1,
			},
			Rating: RatingSignal{MinDelta: 0},
			Formation: FormationSignal{
				Coefficients: formation.DefaultCoefficients(),
			},
		},
	}
}

// DecisionSnapshot records which strategy produced a saved prediction
type DecisionSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	StrategyID string    `json:"strategy_id"`
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}
