package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/basketball-league/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserUsernameConflict = errors.New("username conflict")
	ErrUserEmailConflict    = errors.New("user email conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
	RecordLogin(ctx context.Context, id int) error
	RecordLogout(ctx context.Context, id int, sessionDuration time.Duration, endedAt time.Time) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `
	id, username, email, password_hash,
	is_admin, is_coach, is_player, is_staff,
	login_count, total_login_time, last_login_end, is_online, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	var totalLoginMillis int64
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsAdmin, &u.IsCoach, &u.IsPlayer, &u.IsStaff,
		&u.LoginCount, &totalLoginMillis, &u.LastLoginEnd, &u.IsOnline, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.TotalLoginTime = time.Duration(totalLoginMillis) * time.Millisecond
	return &u, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_admin, is_coach, is_player, is_staff)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.IsAdmin, user.IsCoach, user.IsPlayer, user.IsStaff,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_username_key":
				return ErrUserUsernameConflict
			case "users_email_key":
				return ErrUserEmailConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			username = $1, email = $2, password_hash = $3,
			is_admin = $4, is_coach = $5, is_player = $6, is_staff = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.IsAdmin, user.IsCoach, user.IsPlayer, user.IsStaff,
		user.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			switch pqErr.Constraint {
			case "users_username_key":
				return ErrUserUsernameConflict
			case "users_email_key":
				return ErrUserEmailConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	// Coached teams go with the coach (ON DELETE CASCADE on teams.coach_id).
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) RecordLogin(ctx context.Context, id int) error {
	query := `UPDATE users SET is_online = TRUE, login_count = login_count + 1 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) RecordLogout(ctx context.Context, id int, sessionDuration time.Duration, endedAt time.Time) error {
	query := `
		UPDATE users SET
			is_online = FALSE,
			total_login_time = total_login_time + $1,
			last_login_end = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, sessionDuration.Milliseconds(), endedAt, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
