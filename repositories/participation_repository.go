package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/basketball-league/models"
	"github.com/lib/pq"
)

var (
	ErrParticipationConflict   = errors.New("player already recorded for this game")
	ErrParticipationInvalidRef = errors.New("invalid player, game or team reference")
)

type ParticipationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, participation *models.PlayerGameParticipation) error
	ListByGame(ctx context.Context, gameID int) ([]models.PlayerGameParticipation, error)
}

type postgresParticipationRepository struct {
	db *sql.DB
}

func NewPostgresParticipationRepository(db *sql.DB) ParticipationRepository {
	return &postgresParticipationRepository{db: db}
}

func (r *postgresParticipationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipationRepository) Create(ctx context.Context, exec SQLExecutor, p *models.PlayerGameParticipation) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO player_game_participations (player_id, game_id, team_id, points_scored)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query, p.PlayerID, p.GameID, p.TeamID, p.PointsScored).Scan(&p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrParticipationConflict
			case "23503":
				return ErrParticipationInvalidRef
			}
		}
		return err
	}
	return nil
}

func (r *postgresParticipationRepository) ListByGame(ctx context.Context, gameID int) ([]models.PlayerGameParticipation, error) {
	query := `
		SELECT id, player_id, game_id, team_id, points_scored
		FROM player_game_participations
		WHERE game_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]models.PlayerGameParticipation, 0)
	for rows.Next() {
		var p models.PlayerGameParticipation
		if scanErr := rows.Scan(&p.ID, &p.PlayerID, &p.GameID, &p.TeamID, &p.PointsScored); scanErr != nil {
			return nil, scanErr
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}
