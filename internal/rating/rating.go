// Package rating computes a lineup's aggregate rating from player ratings and
// the roles a formation assigns them.
package rating

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Role is a formation line
type Role string

const (
	Goalkeeper Role = "goalkeeper"
	Defense    Role = "defense"
	Midfield   Role = "midfield"
	Attack     Role = "attack"
)

// Roles lists every role in summary order
var Roles = []Role{Defense, Midfield, Attack, Goalkeeper}

// Player is a roster entry
type Player struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Rating   float64 `json:"rating"`
}

// Options holds out-of-position multipliers
type Options struct {
	GoalkeeperMultiplier    float64 `json:"goalkeeper_multiplier"`     // outfield player in goal
	CrossPositionMultiplier float64 `json:"cross_position_multiplier"` // any other mismatch
}

// DefaultOptions returns the standard multipliers (0.5 in goal, 0.8 elsewhere)
func DefaultOptions() Options {
	return Options{GoalkeeperMultiplier: 0.5, CrossPositionMultiplier: 0.8}
}

// NormalizePosition maps a roster position to a role; unknown positions return ""
func NormalizePosition(position string) Role {
	switch strings.ToLower(strings.TrimSpace(position)) {
	case "goalkeeper":
		return Goalkeeper
	case "defender":
		return Defense
	case "midfielder":
		return Midfield
	case "forward":
		return Attack
	default:
		return ""
	}
}

// Adjusted returns the player's rating when playing role
func Adjusted(p Player, role Role, opts Options) float64 {
	actual := NormalizePosition(p.Position)
	if actual == "" || role == "" {
		return p.Rating
	}
	if actual == role {
		return p.Rating
	}
	if role == Goalkeeper {
		return p.Rating * opts.GoalkeeperMultiplier
	}
	return p.Rating * opts.CrossPositionMultiplier
}

// Lineup groups selected players by assigned role
type Lineup map[Role][]Player

// Summary is the aggregate rating of a lineup
type Summary struct {
	Total     float64          `json:"total"`
	Average   float64          `json:"average"`
	Counts    map[Role]int     `json:"counts"`
	Breakdown map[Role]float64 `json:"breakdown"`
}

// Summarize totals adjusted ratings; total and average are rounded to 2 decimals
func Summarize(l Lineup, opts Options) Summary {
	s := Summary{
		Counts:    make(map[Role]int, len(Roles)),
		Breakdown: make(map[Role]float64, len(Roles)),
	}

	count := 0
	for _, role := range Roles {
		s.Counts[role] = 0
		s.Breakdown[role] = 0
		for _, p := range l[role] {
			adj := Adjusted(p, role, opts)
			s.Breakdown[role] += adj
			s.Counts[role]++
			s.Total += adj
			count++
		}
	}

	if count > 0 {
		s.Average = round2(s.Total / float64(count))
	}
	s.Total = round2(s.Total)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormationRoles returns the role of each slot: slot 0 is the goalkeeper, the
// first line defends, the last line attacks and any lines between are midfield.
func FormationRoles(formation string) ([]Role, error) {
	parts := strings.Split(strings.TrimSpace(formation), "-")
	if len(parts) < 2 {
		return nil, fmt.Errorf("formation %q needs at least two lines", formation)
	}

	lines := make([]int, len(parts))
	outfield := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("formation %q has invalid line %q", formation, p)
		}
		lines[i] = n
		outfield += n
	}
	if outfield != 10 {
		return nil, fmt.Errorf("formation %q has %d outfield players, want 10", formation, outfield)
	}

	roles := []Role{Goalkeeper}
	for i, n := range lines {
		role := Midfield
		switch i {
		case 0:
			role = Defense
		case len(lines) - 1:
			role = Attack
		}
		for j := 0; j < n; j++ {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// BuildLineup places assigned players (slot -> name) into their formation roles.
// Names not on the roster are returned in missing; slots outside the formation are ignored.
func BuildLineup(assigned map[int]string, roster []Player, roles []Role) (Lineup, []string) {
	byName := make(map[string]Player, len(roster))
	for _, p := range roster {
		byName[p.Name] = p
	}

	slots := make([]int, 0, len(assigned))
	for slot := range assigned {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	lineup := make(Lineup)
	var missing []string
	for _, slot := range slots {
		if slot < 0 || slot >= len(roles) {
			continue
		}
		name := assigned[slot]
		p, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		lineup[roles[slot]] = append(lineup[roles[slot]], p)
	}
	return lineup, missing
}

// Squad returns the 0/1 indicator set for the players in the lineup
func (l Lineup) Squad() map[string]int {
	out := make(map[string]int)
	for _, players := range l {
		for _, p := range players {
			out[p.Name] = 1
		}
	}
	return out
}
