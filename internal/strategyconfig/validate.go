package strategyconfig

import (
	"errors"
	"fmt"
	"math"

	"github.com/wonny/matchday/internal/contracts"
)

// WeightSumEpsilon is the tolerance for the weight table summing to 1.0
const WeightSumEpsilon = 1e-6

// ValidationError aborts startup
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning flags a legal but suspicious setting
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Ensemble ===
	if err := ValidateWeights(cfg.Ensemble.Weights); err != nil {
		return err
	}
	if cfg.Ensemble.TieEpsilon <= 0 || cfg.Ensemble.TieEpsilon > 0.01 {
		return ValidationError{"ensemble.tie_epsilon", "must be in (0, 0.01]"}
	}

	// === Signals ===
	if cfg.Signals.Squad.TeamFeature == "" {
		return ValidationError{"signals.squad_strength.team_feature", "required"}
	}
	if cfg.Signals.Rating.MinDelta < 0 || math.IsNaN(cfg.Signals.Rating.MinDelta) {
		return ValidationError{"signals.rating.min_delta", "must be >= 0"}
	}

	c := cfg.Signals.Formation.Coefficients
	if c.Win < 0 || c.Draw < 0 || c.Loss < 0 {
		return ValidationError{"signals.formation.coefficients", "must be >= 0"}
	}
	if c.Precision < 0 || c.Precision > 9 {
		return ValidationError{"signals.formation.coefficients.precision", "must be in [0, 9]"}
	}

	return nil
}

// ValidateWeights checks the weight table on its own
func ValidateWeights(w Weights) error {
	for i, v := range w.Slice() {
		field := "ensemble.weights." + string(contracts.SignalOrder[i])
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValidationError{field, "must be finite"}
		}
		if v < 0 {
			return ValidationError{field, "must be >= 0"}
		}
	}

	if w.SquadLeft != w.SquadRight {
		return ValidationError{"ensemble.weights", "squad_left and squad_right must be equal"}
	}

	if err := validateWeightsSum(w.Slice(), 1.0, WeightSumEpsilon); err != nil {
		return ValidationError{"ensemble.weights", err.Error()}
	}
	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	w := cfg.Ensemble.Weights
	for _, name := range contracts.SignalOrder {
		v := w.Get(name)
		if v == 0 {
			warnings = append(warnings, Warning{
				Code:    "SIGNAL_DISABLED",
				Message: fmt.Sprintf("%s has zero weight and will not be evaluated", name),
			})
		}
		if v > 0.5 {
			warnings = append(warnings, Warning{
				Code:    "DOMINANT_SIGNAL",
				Message: fmt.Sprintf("%s weight %.2f decides every match on its own", name, v),
			})
		}
	}

	return warnings
}

// === Helper Functions ===

func validateWeightsSum(weights []float64, target float64, epsilon float64) error {
	if len(weights) == 0 {
		return errors.New("must not be empty")
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-target) > epsilon {
		return fmt.Errorf("must sum to %.2f, got %.4f", target, sum)
	}
	return nil
}
