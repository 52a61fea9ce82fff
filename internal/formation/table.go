package formation

import (
	"math"
	"strings"

	"github.com/wonny/matchday/internal/contracts"
)

// Coefficients weight the historical rates into a single score
type Coefficients struct {
	Win       float64 `yaml:"win" json:"win"`
	Draw      float64 `yaml:"draw" json:"draw"`
	Loss      float64 `yaml:"loss" json:"loss"`
	Precision int     `yaml:"precision" json:"precision"`
}

// DefaultCoefficients: score = win*1.0 + draw*0.4 - loss*0.6, rounded to 3 decimals
func DefaultCoefficients() Coefficients {
	return Coefficients{Win: 1.0, Draw: 0.4, Loss: 0.6, Precision: 3}
}

// Score computes the formation strength of row
func Score(row contracts.FormationRow, c Coefficients) float64 {
	raw := row.WinningRate*c.Win + row.DrawRate*c.Draw - row.LosingRate*c.Loss
	return round(raw, c.Precision)
}

func round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}

// Key normalizes a (team, formation) pair: team is trimmed and lower-cased,
// formation is trimmed only.
func Key(team, formation string) string {
	return strings.ToLower(strings.TrimSpace(team)) + "|" + strings.TrimSpace(formation)
}

// Table is an immutable (team, formation) → rates index.
// Safe for concurrent reads once built.
type Table struct {
	rows map[string]contracts.FormationRow
}

// NewTable indexes rows. When two rows normalize to the same key the first one wins.
func NewTable(rows []contracts.FormationRow) *Table {
	t := &Table{rows: make(map[string]contracts.FormationRow, len(rows))}
	for _, r := range rows {
		k := Key(r.Team, r.Formation)
		if _, exists := t.rows[k]; exists {
			continue
		}
		t.rows[k] = r
	}
	return t
}

// Lookup finds the row for team and formation
func (t *Table) Lookup(team, formation string) (contracts.FormationRow, bool) {
	row, ok := t.rows[Key(team, formation)]
	return row, ok
}

// Len returns the number of distinct rows
func (t *Table) Len() int {
	return len(t.rows)
}

