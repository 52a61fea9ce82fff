package strategyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := "../../config/strategy/default.yaml"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("config file not found")
	}

	cfg, yamlData, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, yamlData)

	assert.Equal(t, "matchday_ensemble_v1", cfg.Meta.StrategyID)
	assert.Equal(t, Default().Ensemble, cfg.Ensemble, "shipped YAML matches the built-in default")
	assert.Equal(t, "Team_enc", cfg.Signals.Squad.TeamFeature)

	hash, err := Hash(cfg)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	hash2, _ := Hash(cfg)
	assert.Equal(t, hash, hash2, "hash must be deterministic")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.InDelta(t, 1.0, cfg.Ensemble.Weights.Sum(), WeightSumEpsilon)
	assert.Empty(t, Warn(cfg))
}

func TestParse_UnknownField(t *testing.T) {
	yamlData := []byte(`
meta:
  strategy_id: x
ensemble:
  weights:
    histroy: 1.0
`)
	_, err := Parse(yamlData)
	assert.Error(t, err, "typos in field names must fail")
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		field   string
	}{
		{
			name:    "sum below one",
			weights: Weights{History: 0.3, SquadLeft: 0.2, SquadRight: 0.2, Rating: 0.1, Formation: 0.1},
			field:   "ensemble.weights",
		},
		{
			name:    "negative weight",
			weights: Weights{History: 1.2, SquadLeft: 0, SquadRight: 0, Rating: -0.2, Formation: 0},
			field:   "ensemble.weights.rating",
		},
		{
			name:    "asymmetric squad weights",
			weights: Weights{History: 0.3, SquadLeft: 0.3, SquadRight: 0.1, Rating: 0.15, Formation: 0.15},
			field:   "ensemble.weights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights(tt.weights)
			require.Error(t, err)

			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateWeights_OriginalTable(t *testing.T) {
	// 0.4 + 0.3 + 0.3 + 0.2 sums to 1.2 and is rejected
	w := Weights{History: 0.4, SquadLeft: 0.3, SquadRight: 0.3, Rating: 0.2}
	assert.Error(t, ValidateWeights(w))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }, "meta.strategy_id"},
		{"zero tie epsilon", func(c *Config) { c.Ensemble.TieEpsilon = 0 }, "ensemble.tie_epsilon"},
		{"missing team feature", func(c *Config) { c.Signals.Squad.TeamFeature = "" }, "signals.squad_strength.team_feature"},
		{"negative min delta", func(c *Config) { c.Signals.Rating.MinDelta = -1 }, "signals.rating.min_delta"},
		{"negative coefficient", func(c *Config) { c.Signals.Formation.Coefficients.Loss = -0.6 }, "signals.formation.coefficients"},
		{"precision out of range", func(c *Config) { c.Signals.Formation.Coefficients.Precision = 12 }, "signals.formation.coefficients.precision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestWarn(t *testing.T) {
	cfg := Default()
	cfg.Ensemble.Weights = Weights{History: 0.6, SquadLeft: 0.1, SquadRight: 0.1, Rating: 0.2, Formation: 0}
	require.NoError(t, Validate(cfg))

	codes := map[string]int{}
	for _, w := range Warn(cfg) {
		codes[w.Code]++
	}
	assert.Equal(t, 1, codes["DOMINANT_SIGNAL"])
	assert.Equal(t, 1, codes["SIGNAL_DISABLED"])
}

func TestHash_ChangesWithWeights(t *testing.T) {
	a := Default()
	b := Default()
	b.Ensemble.Weights.Rating, b.Ensemble.Weights.Formation = 0.2, 0.1

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meta: {strategy_id: \"\"}\n"), 0o644))
	_, err = LoadOrDefault(path)
	assert.Error(t, err)
}

func TestNewDecisionSnapshot(t *testing.T) {
	snap, err := NewDecisionSnapshot(Default())
	require.NoError(t, err)
	assert.Equal(t, "matchday_ensemble_v1", snap.StrategyID)
	assert.Len(t, snap.ConfigHash, 64)
	assert.False(t, snap.CreatedAt.IsZero())
}
