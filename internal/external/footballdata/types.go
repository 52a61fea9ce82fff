package footballdata

// League is a competition the provider covers
type League struct {
	ID     string `json:"id"` // provider code, e.g. PL
	Name   string `json:"name"`
	Area   string `json:"area"`
	Emblem string `json:"emblem,omitempty"`
}

// StandingRow is one line of a league table
type StandingRow struct {
	Rank           int    `json:"rank"`
	TeamID         int    `json:"teamId"`
	TeamName       string `json:"teamName"`
	Crest          string `json:"crest,omitempty"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

// Team is a club as the provider names it
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
}

// Fixture is an upcoming match seen from one team
type Fixture struct {
	Date        string `json:"date"`
	Opponent    string `json:"opponent"`
	Competition string `json:"competition"`
	Home        bool   `json:"home"`
	Status      string `json:"status"`
}

// Wire formats of the v4 API

type competitionsResponse struct {
	Competitions []struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Emblem string `json:"emblem"`
		Plan   string `json:"plan"`
		Area   struct {
			Name string `json:"name"`
		} `json:"area"`
	} `json:"competitions"`
}

type standingsResponse struct {
	Standings []struct {
		Type  string `json:"type"`
		Table []struct {
			Position int `json:"position"`
			Team     struct {
				ID        int    `json:"id"`
				Name      string `json:"name"`
				ShortName string `json:"shortName"`
				Crest     string `json:"crest"`
			} `json:"team"`
			PlayedGames    int `json:"playedGames"`
			Won            int `json:"won"`
			Draw           int `json:"draw"`
			Lost           int `json:"lost"`
			Points         int `json:"points"`
			GoalsFor       int `json:"goalsFor"`
			GoalsAgainst   int `json:"goalsAgainst"`
			GoalDifference int `json:"goalDifference"`
		} `json:"table"`
	} `json:"standings"`
}

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type matchesResponse struct {
	Matches []struct {
		UTCDate     string `json:"utcDate"`
		Status      string `json:"status"`
		Competition struct {
			Name string `json:"name"`
		} `json:"competition"`
		HomeTeam struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"awayTeam"`
	} `json:"matches"`
}
