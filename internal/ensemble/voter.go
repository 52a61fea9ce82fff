// Package ensemble accumulates weighted signal votes into a single verdict.
package ensemble

import (
	"fmt"
	"math"

	"github.com/wonny/matchday/internal/contracts"
	"github.com/wonny/matchday/internal/strategyconfig"
)

// DefaultTieEpsilon treats classes this close to the maximum as tied
const DefaultTieEpsilon = 1e-9

// Voter applies a validated weight table. It holds no mutable state.
type Voter struct {
	weights strategyconfig.Weights
	epsilon float64
}

// Decision is the outcome of one vote
type Decision struct {
	Class         contracts.VoteClass            `json:"class"`
	Tally         contracts.VoteTally            `json:"tally"`
	Contributions []contracts.SignalContribution `json:"contributions"`
}

// NewVoter validates weights and builds a voter. A non-positive epsilon uses DefaultTieEpsilon.
func NewVoter(weights strategyconfig.Weights, epsilon float64) (*Voter, error) {
	if err := strategyconfig.ValidateWeights(weights); err != nil {
		return nil, fmt.Errorf("invalid weight table: %w", err)
	}
	if epsilon <= 0 {
		epsilon = DefaultTieEpsilon
	}
	return &Voter{weights: weights, epsilon: epsilon}, nil
}

// Weight returns the configured weight of a signal
func (v *Voter) Weight(name contracts.SignalName) float64 {
	return v.weights.Get(name)
}

// Active reports whether a signal takes part in the vote
func (v *Voter) Active(name contracts.SignalName) bool {
	return v.weights.Get(name) > 0
}

// Vote credits each contribution's table weight to its class and selects the winner.
// Incoming Weight fields are overwritten with the table weight.
func (v *Voter) Vote(contributions []contracts.SignalContribution) Decision {
	var tally contracts.VoteTally
	out := make([]contracts.SignalContribution, 0, len(contributions))

	for _, c := range contributions {
		c.Weight = v.weights.Get(c.Signal)
		if c.Weight == 0 {
			continue
		}
		tally.Add(c.Outcome.Class(), c.Weight)
		out = append(out, c)
	}

	return Decision{
		Class:         Select(tally, v.epsilon),
		Tally:         tally,
		Contributions: out,
	}
}

// Select picks the class with the greatest weight. Classes within epsilon of the
// maximum are tied: Draw wins any tie it is part of, and a WinA/WinB tie is a Draw.
func Select(t contracts.VoteTally, epsilon float64) contracts.VoteClass {
	top := math.Max(t.Draw, math.Max(t.WinA, t.WinB))

	atMax := func(v float64) bool { return top-v <= epsilon }

	switch {
	case atMax(t.Draw):
		return contracts.Draw
	case atMax(t.WinA) && atMax(t.WinB):
		return contracts.Draw
	case atMax(t.WinA):
		return contracts.WinA
	default:
		return contracts.WinB
	}
}

// Winner maps a vote class back to a team name or the draw label
func Winner(class contracts.VoteClass, teamA, teamB string) string {
	switch class {
	case contracts.WinA:
		return teamA
	case contracts.WinB:
		return teamB
	default:
		return contracts.DrawLabel
	}
}
