package models

import "time"

// TournamentStatus mirrors the ENUM in the database.
type TournamentStatus string

const (
	TournamentCreated    TournamentStatus = "created"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"
)

type Tournament struct {
	ID             int              `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	StartDate      time.Time        `json:"start_date" db:"start_date"`
	EndDate        *time.Time       `json:"end_date,omitempty" db:"end_date"`
	ChampionTeamID *int             `json:"-" db:"champion_team_id"`
	Status         TournamentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`

	Champion *Team             `json:"champion"` // nil until completed
	Rounds   []TournamentRound `json:"rounds,omitempty" db:"-"`
}

type TournamentRound struct {
	ID           int `json:"id" db:"id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`
	RoundNumber  int `json:"round_number" db:"round_number"`

	Teams []RoundTeam `json:"teams,omitempty" db:"-"`
}

// RoundTeam is the sole per-round outcome record: a team either survived
// the round or was eliminated in it.
type RoundTeam struct {
	ID         int  `json:"id" db:"id"`
	RoundID    int  `json:"round_id" db:"round_id"`
	TeamID     int  `json:"team_id" db:"team_id"`
	Eliminated bool `json:"eliminated" db:"eliminated"`
}
