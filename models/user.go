package models

import "time"

// User carries independent role flags rather than a single role enum.
// The flags are not mutually exclusive; the league data never relied on
// exclusivity and this keeps imported accounts intact.
type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`

	IsAdmin  bool `json:"is_admin" db:"is_admin"`
	IsCoach  bool `json:"is_coach" db:"is_coach"`
	IsPlayer bool `json:"is_player" db:"is_player"`
	IsStaff  bool `json:"is_staff" db:"is_staff"`

	LoginCount     int           `json:"login_count" db:"login_count"`
	TotalLoginTime time.Duration `json:"total_login_time" db:"total_login_time"`
	LastLoginEnd   *time.Time    `json:"last_login_end,omitempty" db:"last_login_end"`
	IsOnline       bool          `json:"is_online" db:"is_online"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is the nested user shape embedded in team and player resources.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	IsCoach  bool   `json:"is_coach"`
	IsPlayer bool   `json:"is_player"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		IsCoach:  u.IsCoach,
		IsPlayer: u.IsPlayer,
	}
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
