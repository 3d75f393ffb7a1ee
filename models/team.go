package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CoachID   int       `json:"coach_id" db:"coach_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Coach   *UserSummary `json:"coach,omitempty" db:"-"`
	Players []Player     `json:"players,omitempty" db:"-"`

	// Weighted mean of home and away scoring averages, filled by the stats
	// service. Never written back to the store.
	AverageScore float64 `json:"average_score" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}

type Player struct {
	ID                int       `json:"id" db:"id"`
	UserID            int       `json:"user_id" db:"user_id"`
	TeamID            int       `json:"team_id" db:"team_id"`
	Name              string    `json:"name" db:"name"`
	Height            float64   `json:"height" db:"height"`
	GamesParticipated int       `json:"games_participated" db:"games_participated"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`

	User *UserSummary `json:"user,omitempty" db:"-"`

	AverageScore float64 `json:"average_score" db:"-"`
}
