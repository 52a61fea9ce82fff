// Package analysis stores users' saved lineups and the prediction made for them.
package analysis

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/matchday/internal/contracts"
)

// ErrNotFound is returned for unknown analyses or analyses owned by another user
var ErrNotFound = errors.New("analysis not found")

// Analysis is a saved lineup, optionally with the match verdict computed when it was saved
type Analysis struct {
	ID            uuid.UUID                   `json:"id"`
	UserID        string                      `json:"user_id"`
	Name          string                      `json:"name"`
	Team          string                      `json:"team"`
	Formation     string                      `json:"formation"`
	Assigned      map[string]string           `json:"assigned"`
	FreePositions []string                    `json:"freePositions"`
	Match         *contracts.MatchRequest     `json:"match,omitempty"`
	Result        *contracts.PredictionResult `json:"result,omitempty"`
	Class         contracts.VoteClass         `json:"class,omitempty"`
	StrategyHash  string                      `json:"strategy_hash,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// Summary is the list view of an analysis
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	Formation string    `json:"formation"`
	Winner    string    `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveRequest is the body of a save call
type SaveRequest struct {
	Name          string                  `json:"name" validate:"max=120"`
	Team          string                  `json:"team" validate:"notblank"`
	Formation     string                  `json:"formation" validate:"notblank"`
	Assigned      map[string]string       `json:"assigned"`
	FreePositions []string                `json:"freePositions"`
	Match         *contracts.MatchRequest `json:"match,omitempty"`
}
