package contracts

// Outcome is what a single signal says about the match
type Outcome string

const (
	FavorTeamA Outcome = "favor_team_a"
	FavorTeamB Outcome = "favor_team_b"
	Neutral    Outcome = "neutral"
)

// Class maps an outcome to the vote class it adds weight to.
// Neutral outcomes vote for a draw.
func (o Outcome) Class() VoteClass {
	switch o {
	case FavorTeamA:
		return WinA
	case FavorTeamB:
		return WinB
	default:
		return Draw
	}
}

// Mirror exchanges the favored side
func (o Outcome) Mirror() Outcome {
	switch o {
	case FavorTeamA:
		return FavorTeamB
	case FavorTeamB:
		return FavorTeamA
	default:
		return Neutral
	}
}

// VoteClass is one of the three verdict classes
type VoteClass string

const (
	WinA VoteClass = "win_a"
	WinB VoteClass = "win_b"
	Draw VoteClass = "draw"
)

// SignalName identifies a signal and its weight entry
type SignalName string

const (
	SignalHistory    SignalName = "history"
	SignalSquadLeft  SignalName = "squad_left"
	SignalSquadRight SignalName = "squad_right"
	SignalRating     SignalName = "rating"
	SignalFormation  SignalName = "formation"
)

// SignalOrder is the fixed evaluation order
var SignalOrder = []SignalName{
	SignalHistory,
	SignalSquadLeft,
	SignalSquadRight,
	SignalRating,
	SignalFormation,
}

// SignalContribution is one signal's vote
type SignalContribution struct {
	Signal  SignalName `json:"signal"`
	Outcome Outcome    `json:"outcome"`
	Weight  float64    `json:"weight"`
	Detail  string     `json:"detail,omitempty"`
}

// VoteTally accumulates weight per class. Values only grow.
type VoteTally struct {
	WinA float64 `json:"win_a"`
	WinB float64 `json:"win_b"`
	Draw float64 `json:"draw"`
}

// Add credits weight to class; negative weights are ignored
func (t *VoteTally) Add(class VoteClass, weight float64) {
	if weight <= 0 {
		return
	}
	switch class {
	case WinA:
		t.WinA += weight
	case WinB:
		t.WinB += weight
	default:
		t.Draw += weight
	}
}

// Get returns the accumulated weight for class
func (t VoteTally) Get(class VoteClass) float64 {
	switch class {
	case WinA:
		return t.WinA
	case WinB:
		return t.WinB
	default:
		return t.Draw
	}
}

// Total returns the sum over all classes
func (t VoteTally) Total() float64 {
	return t.WinA + t.WinB + t.Draw
}
