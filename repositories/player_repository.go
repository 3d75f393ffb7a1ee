package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/basketball-league/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerUserConflict = errors.New("user already has a player record")
	ErrPlayerInvalidRef   = errors.New("invalid user or team reference")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByUserID(ctx context.Context, userID int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	ListByTeams(ctx context.Context, teamIDs []int) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	IncrementGamesParticipated(ctx context.Context, exec SQLExecutor, playerID int) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, user_id, team_id, name, height, games_participated, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (user_id, team_id, name, height, games_participated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.TeamID, p.Name, p.Height, p.GamesParticipated,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrPlayerUserConflict
			case "23503":
				return ErrPlayerInvalidRef
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) GetByUserID(ctx context.Context, userID int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE user_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresPlayerRepository) scanOne(row *sql.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.UserID, &p.TeamID, &p.Name, &p.Height, &p.GamesParticipated, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	return r.list(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	return r.list(ctx, `SELECT `+playerColumns+` FROM players WHERE team_id = $1 ORDER BY id`, teamID)
}

func (r *postgresPlayerRepository) ListByTeams(ctx context.Context, teamIDs []int) ([]models.Player, error) {
	if len(teamIDs) == 0 {
		return []models.Player{}, nil
	}
	return r.list(ctx,
		`SELECT `+playerColumns+` FROM players WHERE team_id = ANY($1) ORDER BY team_id, id`,
		pq.Array(teamIDs))
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := rows.Scan(&p.ID, &p.UserID, &p.TeamID, &p.Name, &p.Height, &p.GamesParticipated, &p.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players SET team_id = $1, name = $2, height = $3, games_participated = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, p.TeamID, p.Name, p.Height, p.GamesParticipated, p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPlayerInvalidRef
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) IncrementGamesParticipated(ctx context.Context, exec SQLExecutor, playerID int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE players SET games_participated = games_participated + 1 WHERE id = $1`
	result, err := executor.ExecContext(ctx, query, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
