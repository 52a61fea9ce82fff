package catalog

import (
	"encoding/json"
	"errors"

	"github.com/wonny/matchday/internal/rating"
)

// ErrNotFound is returned when a team has no catalog entry
var ErrNotFound = errors.New("not found")

// Profile is everything the catalog knows about one team
type Profile struct {
	Team    string          `json:"team"`
	Logo    *string         `json:"logo"`
	Players []rating.Player `json:"players"`
	Metrics json.RawMessage `json:"metrics"`
	History json.RawMessage `json:"history"`
}

// CustomTeam is a user-defined team with its roster
type CustomTeam struct {
	Name    string         `json:"name" validate:"notblank,max=80"`
	Logo    string         `json:"logo,omitempty" validate:"omitempty,url"`
	Players []CustomPlayer `json:"players" validate:"min=1,max=40,dive"`
}

// CustomPlayer is a roster entry of a custom team
type CustomPlayer struct {
	Name     string  `json:"name" validate:"notblank"`
	Position string  `json:"position" validate:"required,oneof=Goalkeeper Defender Midfielder Forward goalkeeper defender midfielder forward"`
	Rating   float64 `json:"rating" validate:"min=1,max=99"`
}

// emptyJSONList is returned for teams without metrics or history rows
var emptyJSONList = json.RawMessage(`[]`)
