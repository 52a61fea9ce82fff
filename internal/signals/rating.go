package signals

import (
	"fmt"
	"math"

	"github.com/wonny/matchday/internal/contracts"
)

// Rating compares the two sides' aggregate ratings
type Rating struct {
	minDelta float64
}

// NewRating creates the rating signal; deltas within minDelta are neutral
func NewRating(minDelta float64) *Rating {
	return &Rating{minDelta: math.Abs(minDelta)}
}

// Evaluate favors the side with the higher rating
func (r *Rating) Evaluate(ratingA, ratingB float64) Result {
	delta := ratingA - ratingB
	detail := fmt.Sprintf("rating delta %+.2f", delta)

	switch {
	case delta > r.minDelta:
		return Result{Outcome: contracts.FavorTeamA, Detail: detail}
	case delta < -r.minDelta:
		return Result{Outcome: contracts.FavorTeamB, Detail: detail}
	default:
		return neutral(detail)
	}
}
