package models

import "time"

// Game is immutable once both final scores are recorded. There is no
// partial or live game state.
type Game struct {
	ID         int       `json:"id" db:"id"`
	Date       time.Time `json:"date" db:"date"`
	Location   string    `json:"location" db:"location"`
	Referee    string    `json:"referee" db:"referee"`
	TeamAID    int       `json:"team_a_id" db:"team_a_id"`
	TeamBID    int       `json:"team_b_id" db:"team_b_id"`
	TeamAScore int       `json:"team_a_score" db:"team_a_score"`
	TeamBScore int       `json:"team_b_score" db:"team_b_score"`

	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`

	Participations []PlayerGameParticipation `json:"participations,omitempty" db:"-"`
}

// Score is one scoring record for a (player, game) pair. Multiple rows per
// pair are tolerated; only PlayerGameParticipation enforces uniqueness.
type Score struct {
	ID       int     `json:"id" db:"id"`
	PlayerID int     `json:"player_id" db:"player_id"`
	GameID   int     `json:"game_id" db:"game_id"`
	Score    float64 `json:"score" db:"score"`
}

// PlayerGameParticipation is unique per (player, game) and denormalizes the
// team reference. The team must match the player's team at save time.
type PlayerGameParticipation struct {
	ID           int `json:"id" db:"id"`
	PlayerID     int `json:"player_id" db:"player_id"`
	GameID       int `json:"game_id" db:"game_id"`
	TeamID       int `json:"team_id" db:"team_id"`
	PointsScored int `json:"points_scored" db:"points_scored"`
}
